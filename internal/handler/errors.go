package handler

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgOptionAddedSuccess      = "Option added successfully"
	MsgOptionUpdatedSuccess    = "Option settings updated successfully"
	MsgTokenPoolUpdatedSuccess = "Token pool updated successfully"
	MsgSeedUpdatedSuccess      = "Seed updated successfully"
	MsgTokenRegisteredSuccess  = "Token registered successfully"
)

// Admin error messages
const (
	ErrMsgInvalidSeed          = "Invalid seed. Provide a decimal or 0x-prefixed hex integer"
	ErrMsgProvisioningDisabled = "Token registration is not supported by the configured factory"
	ErrMsgRegisterTokenFailed  = "Failed to register token"
	ErrMsgMaxSupplyMustBeSet   = "max_supply must be greater than zero"
)
