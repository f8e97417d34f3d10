package actors

import (
	"fmt"
	"os"
	"path/filepath"

	"calcvoices/engine/library"
	"github.com/spf13/viper"
)

// MainAccount is the governed account issuing the MTLAP token.
const MainAccount library.Account = "GCNVDZIHGX473FEI7IXCUAEXUJ4BGCKEMHF36VYP5EMS7PX2QBLAMTLA"

const (
	SourceHorizon  = "horizon"
	SourceSnapshot = "snapshot"
)

// InitConfig sets up our Viper config object. Flags should already be bound so that a
// --rootDir override is honoured when locating config.yaml.
func InitConfig(config *viper.Viper) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	config.SetDefault("rootDir", filepath.Join(homeDir, "calcvoices"))
	config.SetDefault("outputDir", "out")
	config.SetDefault("mainAccount", MainAccount)
	config.SetDefault("token", "MTLAP")
	config.SetDefault("horizonURL", "https://horizon.stellar.org/")
	config.SetDefault("source", SourceHorizon)
	config.SetDefault("snapshotFile", "")
	config.SetDefault("debug", false)
	config.SetDefault("interactive", false)
	config.SetDefault("baseFee", int64(100000))
	config.SetDefault("memo", "Update sign weights")
	config.SetDefault("prefetchWorkers", 8)
	config.SetDefault("metricsFile", "")

	config.SetConfigType("yaml")
	config.SetConfigFile(filepath.Join(config.GetString("rootDir"), "config.yaml"))
	if err = config.ReadInConfig(); err != nil {
		// a missing config file is normal on first run
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}
	return nil
}

// RunConfig is the frozen configuration of one run.
type RunConfig struct {
	RootDir         string
	OutputDir       string
	MainAccount     library.Account
	Token           string
	HorizonURL      string
	Source          string
	SnapshotFile    string
	Debug           bool
	Interactive     bool
	BaseFee         int64
	Memo            string
	PrefetchWorkers int
	MetricsFile     string
}

// NewRunConfig reads every setting out of config once.
func NewRunConfig(config *viper.Viper) (RunConfig, error) {
	c := RunConfig{
		RootDir:         config.GetString("rootDir"),
		OutputDir:       config.GetString("outputDir"),
		MainAccount:     config.GetString("mainAccount"),
		Token:           config.GetString("token"),
		HorizonURL:      config.GetString("horizonURL"),
		Source:          config.GetString("source"),
		SnapshotFile:    config.GetString("snapshotFile"),
		Debug:           config.GetBool("debug"),
		Interactive:     config.GetBool("interactive"),
		BaseFee:         config.GetInt64("baseFee"),
		Memo:            config.GetString("memo"),
		PrefetchWorkers: config.GetInt("prefetchWorkers"),
		MetricsFile:     config.GetString("metricsFile"),
	}
	if len(c.MainAccount) == 0 || len(c.Token) == 0 {
		return c, fmt.Errorf("mainAccount and token are required")
	}
	switch c.Source {
	case SourceHorizon:
	case SourceSnapshot:
		if len(c.SnapshotFile) == 0 {
			return c, fmt.Errorf("source %q needs snapshotFile", c.Source)
		}
	default:
		return c, fmt.Errorf("unknown source %q", c.Source)
	}
	if c.PrefetchWorkers < 1 {
		c.PrefetchWorkers = 1
	}
	if len(c.Memo) > 28 {
		return c, fmt.Errorf("memo %q is longer than 28 bytes", c.Memo)
	}
	return c, nil
}

// OutputPath resolves name inside the output directory.
func (c RunConfig) OutputPath(name string) string {
	dir := c.OutputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.RootDir, dir)
	}
	return filepath.Join(dir, name)
}
