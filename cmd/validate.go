package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haldev/audiohal/internal/audiohal"
	"github.com/haldev/audiohal/internal/logging"
	"github.com/haldev/audiohal/internal/mixer/mock"
)

// CreateValidateCmd creates the validate command, which loads an audio
// routing document against a mock mixer (empty unless --controls seeds
// it) and reports the result.
// It never touches a real sound card, so it is safe to run on a
// developer machine or in CI.
func CreateValidateCmd() *cobra.Command {
	var configDir string
	var controlsFile string

	cmd := &cobra.Command{
		Use:   "validate [config]",
		Short: "Validate an audio routing configuration document",
		Long: `Loads the given XML document against a mixer populated from --controls ` +
			`(a CSV control list; see internal/mixer/mock), reporting every device ` +
			`and named stream it resolves.`,
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			logging.Initialize(logging.Config{Level: "info", Format: "text"})
			logger := logging.GetLogger("validate")

			m := mock.New()
			if controlsFile != "" {
				data, err := os.ReadFile(controlsFile)
				if err != nil {
					logger.Error("reading controls file", "error", err)
					os.Exit(1)
				}
				if err := m.LoadControlsFile(string(data)); err != nil {
					logger.Error("parsing controls file", "error", err)
					os.Exit(1)
				}
			}

			engine, err := audiohal.InitAudioConfig(args[0], configDir, m, logger)
			if err != nil {
				logger.Error("loading configuration", "error", err)
				os.Exit(1)
			}
			defer engine.FreeAudioConfig()

			fmt.Printf("devices:\n")
			for _, d := range engine.Devices() {
				dir := "out"
				if d.Input {
					dir = "in"
				}
				fmt.Printf("  %-16s bit=0x%08x dir=%s\n", d.Name, d.Bit, dir)
			}

			fmt.Printf("named streams:\n")
			for _, s := range engine.NamedStreams() {
				fmt.Printf("  %-16s type=%s instances=%d\n", s.Name, s.Type, s.Instances)
			}
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", "/etc/audiohal", "Default directory for resolving a relative config path")
	cmd.Flags().StringVar(&controlsFile, "controls", "", "CSV file of mock mixer controls (name,kind,num_elements,initial_value,valueset)")
	return cmd
}
