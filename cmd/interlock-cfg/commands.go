package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/muurk/interlock/internal/boot"
	"github.com/muurk/interlock/internal/config"
	"github.com/muurk/interlock/internal/flashfs"
	"github.com/muurk/interlock/internal/logging"
	"github.com/muurk/interlock/internal/ui"
)

// errInvalidConfig is returned after the failure has already been printed.
var errInvalidConfig = errors.New("configuration invalid")

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("root", ".", "Directory holding the unpacked flash image")
	flags.String("file", config.DefaultPath, "Config file path inside the image")
	flags.Duration("lock-timeout", time.Second, "Filesystem lock wait (negative waits forever)")
	flags.String("log-level", "", "Log level (debug, info, warn, error); silent when empty")
	flags.String("format", "detailed", "Output format for show (detailed, compact, json, yaml)")
	flags.Bool("reveal-secrets", false, "Print the WiFi PSK and portal API key in clear")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(bootCmd)
}

// session is the flash image and config store a command works on.
type session struct {
	fs          *flashfs.Store
	store       *config.Store
	root        string
	mountStatus string
}

// openSession mounts the image directory. A failed mount is returned as an
// error carrying the device's status string.
func openSession(mount bool) (*session, error) {
	root := viper.GetString("root")
	wait := viper.GetDuration("lock-timeout")
	if wait < 0 {
		wait = flashfs.WaitForever
	}

	fs := flashfs.NewOsStore(root)
	s := &session{
		fs:    fs,
		store: config.NewStore(fs, config.WithPath(viper.GetString("file")), config.WithLockWait(wait)),
		root:  root,
	}

	if mount {
		status, err := fs.Mount()
		s.mountStatus = status
		if err != nil {
			return nil, fmt.Errorf("%s: %w", status, err)
		}
	}
	return s, nil
}

func (s *session) header(title, command string) *ui.Header {
	return ui.NewHeader(title, command,
		ui.Param{Key: "Root", Value: s.root},
		ui.Param{Key: "File", Value: s.store.Path()},
	)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every configuration key",
	Long: `Load the configuration exactly as the device does at startup.

Every key is read and converted. On failure, every problem is listed and
the command exits non-zero; the device would refuse to start.`,
	Example: `  # Check an unpacked image
  interlock-cfg check --root ./flash

  # Same, configured from the environment
  INTERLOCK_ROOT=./flash interlock-cfg check`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := openSession(true)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s.header("Config Check", "interlock-cfg check").Render())

	var lines []string
	reporter := config.ReporterFunc(func(line string) {
		lines = append(lines, line)
		logging.ConfigSink().Report(line)
	})

	snap, err := config.NewLoader(s.store, reporter).Load(cmd.Context())
	if err != nil {
		var loadErr *config.LoadError
		if !errors.As(err, &loadErr) {
			return err
		}
		fmt.Fprintln(out, ui.NewFailureResult("Configuration invalid", lines, hints(loadErr.Status)).Render())
		return errInvalidConfig
	}

	result := ui.NewSuccessResult("Configuration valid")
	for _, p := range viewParams(snap.View(viper.GetBool("reveal-secrets"))) {
		result.AddDetail(p.Key, p.Value)
	}
	fmt.Fprintln(out, result.Render())
	return nil
}

// hints gathers troubleshooting advice once per failed kind.
func hints(status *config.Status) []string {
	var tips []string
	for _, kind := range status.Kinds() {
		tips = append(tips, config.TroubleshootingHint(kind)...)
	}
	return tips
}

func viewParams(v config.View) []ui.Param {
	return []ui.Param{
		{Key: config.KeyDeviceType.String(), Value: v.DeviceType},
		{Key: config.KeyDeviceName.String(), Value: v.DeviceName},
		{Key: config.KeyPortalAddress.String(), Value: v.PortalAddress},
		{Key: config.KeyPortalAPIKey.String(), Value: v.PortalAPIKey},
		{Key: config.KeyPortalPort.String(), Value: fmt.Sprint(v.PortalPort)},
		{Key: config.KeyWiFiSSID.String(), Value: v.WiFiSSID},
		{Key: config.KeyWiFiPSK.String(), Value: v.WiFiPSK},
		{Key: config.KeyLEDCount.String(), Value: fmt.Sprint(v.LEDCount)},
		{Key: config.KeyLEDType.String(), Value: v.LEDType},
		{Key: config.KeyRFIDReaderType.String(), Value: v.RFIDReaderType},
		{Key: config.KeyRFIDSkeletonCard.String(), Value: v.SkeletonCard},
		{Key: config.KeyConfigVersion.String(), Value: fmt.Sprint(v.ConfigVersion)},
	}
}

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the raw value of one key",
	Long: `Look up a single key and print its value exactly as stored, without
type conversion. Key names are case-insensitive.`,
	Example: `  interlock-cfg get WIFI_SSID --root ./flash`,
	Args:    cobra.ExactArgs(1),
	RunE:    runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	key, ok := config.ParseKey(args[0])
	if !ok {
		return fmt.Errorf("unknown key %q (see 'interlock-cfg keys')", args[0])
	}

	s, err := openSession(true)
	if err != nil {
		return err
	}

	value, err := s.store.Value(cmd.Context(), key)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the loaded configuration",
	Long: `Load and validate the configuration, then print it. Secrets are
redacted unless --reveal-secrets is given.`,
	Example: `  interlock-cfg show --root ./flash
  interlock-cfg show --root ./flash --format compact
  interlock-cfg show --root ./flash --format yaml`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}

	snap, err := config.NewLoader(s.store, logging.NewWriterSink(cmd.ErrOrStderr())).Load(cmd.Context())
	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		return errInvalidConfig
	}
	if err != nil {
		return err
	}

	return writeSnapshot(cmd.OutOrStdout(), snap, viper.GetString("format"), viper.GetBool("reveal-secrets"))
}

func writeSnapshot(w io.Writer, snap *config.Snapshot, format string, reveal bool) error {
	switch format {
	case "detailed":
		fmt.Fprint(w, snap.FormatDetailed(reveal))
	case "compact":
		fmt.Fprint(w, snap.FormatCompact())
	case "json", "yaml":
		data, err := snap.Encode(format, reveal)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
	default:
		return fmt.Errorf("unknown format %q (detailed, compact, json, yaml)", format)
	}
	return nil
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Look up every key and print raw results",
	Long: `Run one lookup per key and print either its raw value or the reason
it failed. Unlike check, no conversion is attempted.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range s.store.Dump(cmd.Context()) {
		if e.Err != nil {
			fmt.Fprintf(out, "%-20s error: %s\n", e.Key, config.KindOf(e.Err))
			continue
		}
		fmt.Fprintf(out, "%-20s %s\n", e.Key, e.Value)
	}
	return nil
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognized configuration keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		writeKeys(cmd.OutOrStdout())
		return nil
	},
}

func writeKeys(w io.Writer) {
	for _, key := range config.Keys() {
		info := config.Describe(key)
		values := ""
		if len(info.Values) > 0 {
			values = " [" + strings.Join(info.Values, "|") + "]"
		}
		fmt.Fprintf(w, "%-20s %-7s %s%s\n", key, info.Type, info.Description, values)
	}
}

var bootCmd = &cobra.Command{
	Use:   "boot",
	Short: "Run the device startup sequence against the image",
	Long: `Mount the image, load the configuration and print the parameters the
network and peripheral bring-up would receive. Nothing is started.`,
	Args: cobra.NoArgs,
	RunE: runBoot,
}

func runBoot(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reveal := viper.GetBool("reveal-secrets")

	var lines []string
	seq := boot.NewSequence(s.fs, config.NewLoader(s.store, logging.ConfigSink())).
		AddStage("network", func(_ context.Context, snap *config.Snapshot) error {
			p := boot.NewNetworkParams(snap)
			psk := p.PSK
			if !reveal && psk != "" {
				psk = "********"
			}
			lines = append(lines, fmt.Sprintf("network:     ssid=%q psk=%q portal=%s", p.SSID, psk, p.PortalEndpoint()))
			return nil
		}).
		AddStage("peripherals", func(_ context.Context, snap *config.Snapshot) error {
			p := boot.NewPeripheralParams(snap)
			card := "none"
			if p.SkeletonCard != nil {
				card = fmt.Sprint(*p.SkeletonCard)
			}
			lines = append(lines, fmt.Sprintf("peripherals: %s leds=%dx%s reader=%s skeleton=%s",
				p.DeviceType, p.LEDCount, p.LEDType, p.Reader, card))
			return nil
		})

	report, err := seq.Run(cmd.Context())
	fmt.Fprintf(out, "filesystem:  %s\n", report.MountStatus)
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "started:     %s\n", strings.Join(report.Completed, ", "))
	return nil
}
