package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beingmomen/dictation-core/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available capture devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		capture, err := audio.NewMalgoCapture()
		if err != nil {
			return err
		}
		defer capture.Close()

		devices, err := capture.ListDevices()
		if err != nil {
			return err
		}

		for _, d := range devices {
			marker := " "
			if d.IsDefault {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, d.Name)
		}
		return nil
	},
}
