package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/myprofile/internal/domain"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		u, err := client.GetProfile(cmd.Context(), token)
		if err != nil {
			return err
		}
		return printProfile(cmd.OutOrStdout(), domain.Normalize(u))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func printProfile(w io.Writer, p domain.Profile) error {
	image := p.Image
	if image == domain.DefaultImage {
		image = "(default)"
	}
	address := strings.TrimSpace(strings.Join([]string{p.Address.Line1, p.Address.Line2}, ", "))
	address = strings.Trim(address, ", ")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Address", address},
		{"Gender", p.Gender},
		{"Birthday", p.DOB},
		{"Pet", p.Pet},
		{"About pet", p.AboutPet},
		{"Image", image},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}
