package manager

const (
	errPuttingState      = "ERROR_PUTTING_STATE"
	errGettingState      = "ERROR_GETTING_STATE"
	errInvlidArgsCount   = "ERROR_INVALID_ARGUMENT_COUNT"
	errMethodUnsupported = "ERROR_UNSUPPORTED_METHOD"
	errAlreadyLocked     = "ERROR_ALREADY_LOCKED"
	errFreedLock         = "ERROR_FREE_LOCK"
	errInvokeChaincode   = "ERROR_INVOKEING_CHAINCODE"
	errBadRequestObject  = "ERROR_BAD_REQUEST_OBJECT"
	errGettingCaller     = "ERROR_GETTING_CALLER"
	errRejected          = "ERROR_TRANSITION_REJECTED"
	errNotConfigured     = "ERROR_NOT_CONFIGURED"
	errSettingEvent      = "ERROR_SETTING_EVENT"
	errAlreadyRevealed   = "ERROR_ALREADY_REVEALED"
)

const (
	ccChannelKey   = "HAWALA~CHANNEL"
	ccAlgorithmKey = "HAWALA~ALGORITHM"

	proposalObjectType  = "HAWALA~PROPOSAL"
	lockedIouObjectType = "HAWALA~LOCKEDIOU"
	iouObjectType       = "HAWALA~IOU"
	revealObjectType    = "HAWALA~REVEAL"
)
