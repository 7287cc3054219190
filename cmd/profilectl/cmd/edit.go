package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/nfrund/myprofile/internal/appctx"
	"github.com/nfrund/myprofile/internal/domain"
	"github.com/nfrund/myprofile/internal/notify"
	"github.com/nfrund/myprofile/internal/preview"
	"github.com/nfrund/myprofile/internal/profileview"
	"github.com/nfrund/myprofile/internal/storage"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
)

var editFlags struct {
	name, phone, line1, line2, gender, dob, aboutPet, avatar string
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change profile fields and upload a new avatar",
	Long: `Edit applies the given fields on top of the current profile and saves them.
Fields that are not given keep their current value.`,
	Example: `  profilectl edit --name "Ada Lovelace" --line2 "Flat 5"
  profilectl edit --gender non-binary --avatar ./me.png`,
	RunE: runEdit,
}

func init() {
	f := editCmd.Flags()
	f.StringVar(&editFlags.name, "name", "", "display name")
	f.StringVar(&editFlags.phone, "phone", "", "phone number")
	f.StringVar(&editFlags.line1, "line1", "", "first address line")
	f.StringVar(&editFlags.line2, "line2", "", "second address line")
	f.StringVar(&editFlags.gender, "gender", "", "one of: "+strings.Join(domain.Genders, ", "))
	f.StringVar(&editFlags.dob, "dob", "", "birthday, YYYY-MM-DD")
	f.StringVar(&editFlags.aboutPet, "about-pet", "", "a few words about your pet")
	f.StringVar(&editFlags.avatar, "avatar", "", "path of an image to upload")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newClient()
	if err != nil {
		return err
	}

	store := appctx.New(client, token)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	previews := preview.NewRegistry(storage.NewAferoStore(afero.NewMemMapFs()), "preview:")
	vm := profileview.New(store, client, previews, notify.NewWriter(cmd.OutOrStdout()))
	defer vm.Close()

	if err := vm.StartEdit(); err != nil {
		return err
	}

	flags := cmd.Flags()
	edits := []struct {
		flag  string
		value string
		set   func(string) error
	}{
		{"name", editFlags.name, vm.SetName},
		{"phone", editFlags.phone, vm.SetPhone},
		{"line1", editFlags.line1, vm.SetAddressLine1},
		{"line2", editFlags.line2, vm.SetAddressLine2},
		{"dob", editFlags.dob, vm.SetDOB},
		{"about-pet", editFlags.aboutPet, vm.SetAboutPet},
	}
	for _, e := range edits {
		if !flags.Changed(e.flag) {
			continue
		}
		if err := e.set(e.value); err != nil {
			return err
		}
	}

	if flags.Changed("gender") {
		gender, ok := normalizeGender(editFlags.gender)
		if !ok {
			return fmt.Errorf("unknown gender %q: want one of %s", editFlags.gender, strings.Join(domain.Genders, ", "))
		}
		if err := vm.SetGender(gender); err != nil {
			return err
		}
	}

	if editFlags.avatar != "" {
		file, err := readAvatar(editFlags.avatar)
		if err != nil {
			return err
		}
		if err := vm.SelectAvatar(ctx, file); err != nil {
			return err
		}
	}

	outcome := vm.Save(ctx)
	store.Wait()
	if outcome != profileview.SaveSucceeded {
		return errors.New("profile was not updated")
	}
	return printProfile(cmd.OutOrStdout(), vm.Canonical())
}

// normalizeGender matches s case-insensitively against the accepted genders.
func normalizeGender(s string) (string, bool) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(s))
	if want == "" {
		return "", true
	}
	for _, g := range domain.Genders {
		if fold.String(g) == want {
			return g, true
		}
	}
	return "", false
}

func readAvatar(path string) (*domain.AvatarFile, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	return &domain.AvatarFile{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(content),
		Content:     content,
	}, nil
}
