package pdfscrub

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redactyl/pdfscrub/internal/config"
)

// settings is the resolved configuration for one invocation.
type settings struct {
	LogsDir       string
	Include       string
	Exclude       string
	SortPaths     bool
	AtomicReplace bool
	NoProgress    bool
	NoColor       bool
	Table         bool
	LogLevel      string
	JSON          bool
}

// newViper binds cmd's flags and PDFSCRUB_* environment variables.
// Values it reports as set take precedence over config files.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("PDFSCRUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

// loadFileConfigs returns the local and global file configs. An explicit
// --config path replaces the local lookup.
func loadFileConfigs(v *viper.Viper) (local, global config.FileConfig, err error) {
	if c, gerr := config.LoadGlobal(); gerr == nil {
		global = c
	}
	if p := v.GetString("config"); p != "" {
		local, err = config.LoadFile(p)
		return local, global, err
	}
	if wd, werr := os.Getwd(); werr == nil {
		if c, lerr := config.LoadLocal(wd); lerr == nil {
			local = c
		}
	}
	return local, global, nil
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	v, err := newViper(cmd)
	if err != nil {
		return settings{}, err
	}
	lcfg, gcfg, err := loadFileConfigs(v)
	if err != nil {
		return settings{}, err
	}
	s := settings{
		LogsDir:       pickString(viperString(v, "logs-dir"), lcfg.LogsDir, gcfg.LogsDir),
		Include:       pickString(viperString(v, "include"), lcfg.Include, gcfg.Include),
		Exclude:       pickString(viperString(v, "exclude"), lcfg.Exclude, gcfg.Exclude),
		SortPaths:     pickBool(viperBool(v, "sort"), lcfg.SortPaths, gcfg.SortPaths),
		AtomicReplace: pickBool(viperBool(v, "atomic-replace"), lcfg.AtomicReplace, gcfg.AtomicReplace),
		NoProgress:    pickBool(viperBool(v, "no-progress"), lcfg.NoProgress, gcfg.NoProgress),
		NoColor:       pickBool(viperBool(v, "no-color"), lcfg.NoColor, gcfg.NoColor),
		Table:         pickBool(viperBool(v, "table"), lcfg.Table, gcfg.Table),
		LogLevel:      pickString(viperString(v, "log-level"), lcfg.LogLevel, gcfg.LogLevel),
		JSON:          pickBool(viperBool(v, "json"), nil, nil),
	}
	if s.LogLevel == "" {
		s.LogLevel = "warn"
	}
	return s, nil
}

// viperString returns the flag or env value for key, or nil when neither
// was given.
func viperString(v *viper.Viper, key string) *string {
	if !v.IsSet(key) {
		return nil
	}
	s := v.GetString(key)
	return &s
}

func viperBool(v *viper.Viper, key string) *bool {
	if !v.IsSet(key) {
		return nil
	}
	b := v.GetBool(key)
	return &b
}

func pickString(cli, local, global *string) string {
	for _, p := range []*string{cli, local, global} {
		if p != nil && *p != "" {
			return *p
		}
	}
	return ""
}

func pickBool(cli, local, global *bool) bool {
	for _, p := range []*bool{cli, local, global} {
		if p != nil {
			return *p
		}
	}
	return false
}
