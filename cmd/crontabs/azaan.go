package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mowens/crontabs/internal/config"
	"github.com/mowens/crontabs/internal/crontab"
	"github.com/mowens/crontabs/internal/logger"
	"github.com/mowens/crontabs/internal/praytimes"
	"github.com/spf13/cobra"
)

var azaanDryRun bool

// azaanCmd represents the azaan command
var azaanCmd = &cobra.Command{
	Use:   "azaan",
	Short: "Rewrite the configured user's crontab with today's prayer times",
	Long: `Compute today's prayer times for the configured coordinates, remove all
jobs previously created by this command (identified by their comment tag),
and install fresh trigger jobs for each prayer plus a nightly self-update
job and a monthly log-truncate job.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log := setup()

		calc, err := praytimes.New(cfg.Azaan.Method)
		if err != nil {
			log.Error("Invalid calculation method", err)
			os.Exit(1)
		}

		now := time.Now()
		// The zone offset already includes DST, so dst stays false here.
		_, offsetSec := now.Zone()
		times := calc.GetTimes(now, cfg.Azaan.Latitude, cfg.Azaan.Longitude, float64(offsetSec)/3600, false)

		log.Info("computed prayer times",
			logger.Field{Key: "fajr", Value: times.Fajr},
			logger.Field{Key: "dhuhr", Value: times.Dhuhr},
			logger.Field{Key: "asr", Value: times.Asr},
			logger.Field{Key: "maghrib", Value: times.Maghrib},
			logger.Field{Key: "isha", Value: times.Isha})

		eng := newEngine(cfg)
		tab, err := eng.OpenUser(cfg.Azaan.User)
		if err != nil {
			log.Error("Failed to open user crontab", err,
				logger.Field{Key: "user", Value: cfg.Azaan.User})
			os.Exit(1)
		}

		if err := buildAzaanTab(tab, cfg.Azaan, times); err != nil {
			log.Error("Failed to build crontab", err)
			os.Exit(1)
		}

		if azaanDryRun {
			fmt.Print(tab.Render())
			return
		}

		if err := tab.WriteToUser(cfg.Azaan.User); err != nil {
			log.Error("Failed to install crontab", err,
				logger.Field{Key: "user", Value: cfg.Azaan.User})
			os.Exit(1)
		}
		log.Info("crontab installed", logger.Field{Key: "user", Value: cfg.Azaan.User})
	},
}

func init() {
	azaanCmd.Flags().BoolVar(&azaanDryRun, "dry-run", false, "print the rendered crontab instead of installing it")
}

// buildAzaanTab replaces every job tagged with the configured comment by
// fresh trigger jobs: one per prayer time, a nightly self-update at 03:15 and
// a log truncation on the first of each month.
func buildAzaanTab(tab *crontab.Tab, cfg config.AzaanConfig, times praytimes.Times) error {
	tab.RemoveByComment(cfg.Tag)

	prayers := []struct {
		name    string
		at      string
		command string
	}{
		{"fajr", times.Fajr, cfg.FajrCommand},
		{"dhuhr", times.Dhuhr, cfg.AdhanCommand},
		{"asr", times.Asr, cfg.AdhanCommand},
		{"maghrib", times.Maghrib, cfg.AdhanCommand},
		{"isha", times.Isha, cfg.AdhanCommand},
	}
	for _, p := range prayers {
		hour, minute, err := parseClock(p.at)
		if err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
		job := tab.NewJob(p.command, "", cfg.Tag)
		if err := job.SetSchedule(minute, hour, "", "", ""); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
	}

	// Recompute the times overnight, after any DST change has settled.
	update := tab.NewJob(cfg.UpdateCommand, "", cfg.Tag)
	if err := update.SetSchedule("15", "3", "", "", ""); err != nil {
		return err
	}

	clearLogs := tab.NewJob(cfg.ClearLogCommand, "", cfg.Tag)
	return clearLogs.SetSchedule("0", "0", "1", "", "")
}

// parseClock splits an "HH:MM" string into cron hour and minute fields.
func parseClock(clock string) (hour, minute string, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed time %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", "", fmt.Errorf("malformed hour in %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return "", "", fmt.Errorf("malformed minute in %q", clock)
	}
	return strconv.Itoa(h), strconv.Itoa(m), nil
}
