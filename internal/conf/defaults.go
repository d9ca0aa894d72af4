// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)
	viper.SetDefault("datapath", "")

	viper.SetDefault("main.name", "Perchlog")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 1048576)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "")

	viper.SetDefault("output.file.enabled", false)
	viper.SetDefault("output.file.path", "")

	// Backend detection retry loop, bounded. Matches the probe cadence the
	// UI shell uses while the native backend attaches.
	viper.SetDefault("resolver.interval", 500*time.Millisecond)
	viper.SetDefault("resolver.maxattempts", 6)
}
