//go:build linux

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haldev/audiohal/pkg/linuxav/alsa"
)

// CreateAlsaDevicesCmd creates the alsa-devices command, a hardware
// diagnostic that enumerates PCM capture capabilities directly from
// the kernel, independent of any routing configuration document.
func CreateAlsaDevicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alsa-devices",
		Short: "Enumerate ALSA capture devices and their capabilities",
		Run: func(_ *cobra.Command, _ []string) {
			devices, err := alsa.ListDevices()
			if err != nil {
				fmt.Fprintln(os.Stderr, "alsa-devices:", err)
				os.Exit(1)
			}
			if len(devices) == 0 {
				fmt.Println("no capture devices found")
				return
			}
			for _, d := range devices {
				fmt.Printf("%s  card=%q (%d) device=%d %q\n", d.ALSADevice, d.CardName, d.CardNumber, d.DeviceNumber, d.DeviceName)
				fmt.Printf("    channels=%d-%d formats=%s rates=%v\n",
					d.MinChannels, d.MaxChannels, strings.Join(d.SupportedFormats, ","), d.SupportedRates)
			}
		},
	}
	return cmd
}
