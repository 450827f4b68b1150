package model

// ReturnValuesReuse values of a common module.
const (
	ReuseDontUse       = "DontUse"
	ReuseDuringRequest = "DuringRequest"
	ReuseDuringSession = "DuringSession"
)

// CommonModuleType is the classification of a common module derived from its
// execution-context flags.
type CommonModuleType string

const (
	ModuleTypeUnknown          CommonModuleType = "Unknown"
	ModuleTypeServer           CommonModuleType = "Server"
	ModuleTypeServerCached     CommonModuleType = "ServerCached"
	ModuleTypeServerCall       CommonModuleType = "ServerCall"
	ModuleTypeServerCallCached CommonModuleType = "ServerCallCached"
	ModuleTypeServerFullAccess CommonModuleType = "ServerFullAccess"
	ModuleTypeClient           CommonModuleType = "Client"
	ModuleTypeClientCached     CommonModuleType = "ClientCached"
	ModuleTypeClientGlobal     CommonModuleType = "ClientGlobal"
	ModuleTypeClientServer     CommonModuleType = "ClientServer"
)

// ClassifyCommonModule maps the flags of a common module onto one of the known
// module types. Combinations that match none of them yield ModuleTypeUnknown,
// as does any object that is not a common module.
//
// The managed-client flag decides whether a module runs on the client; the
// ordinary-client and external-connection flags are tolerated on server
// modules.
func ClassifyCommonModule(obj Object) CommonModuleType {
	if obj == nil || obj.Kind() != KindCommonModule {
		return ModuleTypeUnknown
	}

	server := obj.Bool(FeatureServer)
	serverCall := obj.Bool(FeatureServerCall)
	client := obj.Bool(FeatureClientManagedApplication)
	global := obj.Bool(FeatureGlobal)
	privileged := obj.Bool(FeaturePrivileged)

	var cached bool
	switch obj.Text(FeatureReturnValuesReuse) {
	case "", ReuseDontUse:
	case ReuseDuringRequest, ReuseDuringSession:
		cached = true
	default:
		return ModuleTypeUnknown
	}

	switch {
	case global:
		if client && !server && !serverCall && !privileged && !cached {
			return ModuleTypeClientGlobal
		}
	case client && server:
		if !serverCall && !privileged && !cached {
			return ModuleTypeClientServer
		}
	case client:
		if serverCall || privileged {
			return ModuleTypeUnknown
		}
		if cached {
			return ModuleTypeClientCached
		}
		return ModuleTypeClient
	case server && privileged:
		if !serverCall && !cached {
			return ModuleTypeServerFullAccess
		}
	case server && serverCall:
		if cached {
			return ModuleTypeServerCallCached
		}
		return ModuleTypeServerCall
	case server:
		if cached {
			return ModuleTypeServerCached
		}
		return ModuleTypeServer
	}
	return ModuleTypeUnknown
}
