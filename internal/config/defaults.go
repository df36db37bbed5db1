package config

import "github.com/mowens/crontabs/internal/crontab"

// Defaults mirror the original Raspberry Pi adhan clock deployment; anything
// site-specific is expected to be overridden in the config file.
func applyDefaults(c *Config) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}

	if c.Discovery.SpoolDir == "" {
		c.Discovery.SpoolDir = crontab.DefaultSpoolDir
	}
	if len(c.Discovery.SystemTabs) == 0 {
		c.Discovery.SystemTabs = []string{"/etc/crontab", "/etc/cron.d"}
	}
	if len(c.Discovery.AnacronDirs) == 0 {
		c.Discovery.AnacronDirs = []string{
			"/etc/cron.hourly",
			"/etc/cron.daily",
			"/etc/cron.weekly",
			"/etc/cron.monthly",
		}
	}
	if c.Discovery.InstallCommand == "" {
		c.Discovery.InstallCommand = "crontab"
	}

	if c.Azaan.User == "" {
		c.Azaan.User = "pi"
	}
	if c.Azaan.Latitude == 0 && c.Azaan.Longitude == 0 {
		c.Azaan.Latitude = -6.21462
		c.Azaan.Longitude = 106.84513
	}
	if c.Azaan.Method == "" {
		c.Azaan.Method = "Makkah"
	}
	if c.Azaan.Tag == "" {
		c.Azaan.Tag = "rpiAdhanClockJob"
	}
	if c.Azaan.AdhanCommand == "" {
		c.Azaan.AdhanCommand = "omxplayer -o local /home/pi/adhan/Adhan-Makkah.mp3 > /dev/null 2>&1"
	}
	if c.Azaan.FajrCommand == "" {
		c.Azaan.FajrCommand = "omxplayer -o local /home/pi/adhan/Adhan-fajr.mp3 > /dev/null 2>&1"
	}
	if c.Azaan.UpdateCommand == "" {
		c.Azaan.UpdateCommand = "crontabs azaan >> /home/pi/adhan/adhan.log 2>&1"
	}
	if c.Azaan.ClearLogCommand == "" {
		c.Azaan.ClearLogCommand = "truncate -s 0 /home/pi/adhan/adhan.log 2>&1"
	}
}
