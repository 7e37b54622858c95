package pkgconfig

import (
	"encoding/base64"
	"strings"

	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file path and returns a Viper-backed Config.
//
// The config file type is inferred by Viper from the filename extension. Keys
// can be overridden with TNG_ prefixed environment variables, dots replaced
// by underscores (TNG_STORAGE_DRIVER overrides storage.driver). An empty path
// skips the file entirely.
func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()

	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("TNG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Without a file the defaults and environment are the whole config.
	if pathFile == "" {
		return &Viper{v: v}, nil
	}

	v.SetConfigFile(pathFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.WatchConfig()

	return &Viper{v: v}, nil
}

// GetInt returns the value for key as int64.
func (vc *Viper) GetInt(key string) int64 {
	return vc.v.GetInt64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetFloat returns the value for key as float64.
func (vc *Viper) GetFloat(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetBinary returns the value for key decoded from base64.
func (vc *Viper) GetBinary(key string) []byte {
	data, err := base64.StdEncoding.DecodeString(vc.v.GetString(key))
	if err != nil {
		return nil
	}

	return data
}

// GetArray splits a comma separated value, trimming items and dropping empty ones.
func (vc *Viper) GetArray(key string) []string {
	var out []string
	for _, item := range strings.Split(vc.v.GetString(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetMap parses "k:v,k:v" pairs; items without a colon are ignored.
func (vc *Viper) GetMap(key string) map[string]string {
	m := make(map[string]string)
	for _, pair := range vc.GetArray(key) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return m
}

var _ Config = (*Viper)(nil)

// Close is a no-op; Viper holds no resources worth releasing.
func (vc *Viper) Close() error {
	return nil
}
