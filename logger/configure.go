package logger

import (
	"github.com/treelog/treelog/bridge"
	"github.com/treelog/treelog/config"
	"github.com/treelog/treelog/engine"
)

// Configure sets up the process with the file named by the
// TREELOG_CONFIG environment variable, or the basic setup (console
// encoding to stderr, no explicit levels) when the variable is unset.
func Configure() error {
	if path, ok := config.DefaultPath(); ok {
		return ConfigureFile(path)
	}
	return apply(&config.Config{})
}

// ConfigureFile sets up the process from a YAML configuration file.
func ConfigureFile(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	return apply(cfg)
}

// ConfigureBytes sets up the process from an in-memory YAML document,
// equivalent to ConfigureFile on a file with the same content.
func ConfigureBytes(content []byte) error {
	cfg, err := config.LoadBytes(content)
	if err != nil {
		return err
	}
	return apply(cfg)
}

// ConfigureAndWatch applies the file and re-applies it whenever it
// changes. The returned stop function releases the watcher.
func ConfigureAndWatch(path string) (stop func(), err error) {
	if err := ConfigureFile(path); err != nil {
		return nil, err
	}
	return config.Watch(path, func(cfg *config.Config) {
		_ = apply(cfg)
	})
}

// apply rebuilds the engine, applies per-logger levels to the process
// registry and sets the bridge state.
func apply(cfg *config.Config) error {
	if err := engine.Configure(cfg); err != nil {
		return err
	}

	levels, err := cfg.Levels()
	if err != nil {
		return err
	}
	for name, lv := range levels {
		defaultRegistry.GetLogger(name).SetLevel(lv)
	}

	if cfg.Bridge {
		bridge.Enable()
	} else {
		bridge.Disable()
	}
	return nil
}

// InstallBridge attaches the generic-to-native adapter to the generic
// facility's root logger, gated by the process registry. Install it
// once per process; the returned handler allows overriding the
// fallback sink.
func InstallBridge() *bridge.NativeHandler {
	return bridge.Install(defaultRegistry)
}
