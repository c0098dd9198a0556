package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ ConfigProvider  = (*YAMLConfigProvider)(nil)
	_ ConfigProvider  = StaticConfigProvider{}
	_ EnvLoader       = ProcessEnvLoader{}
	_ EnvLoader       = StaticEnvLoader{}
	_ AccountResolver = GoOptionsResolver{}
	_ MessageRouter   = MessageRouterFunc(nil)

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
