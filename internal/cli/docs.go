package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Document response type (matches API)
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerEmail string `json:"owner_email"`
	Content    string `json:"content,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Document management commands",
	}

	cmd.AddCommand(newDocsListCmd())
	cmd.AddCommand(newDocsGetCmd())
	cmd.AddCommand(newDocsSaveCmd())
	cmd.AddCommand(newDocsImportCmd())
	cmd.AddCommand(newDocsDeleteCmd())

	return cmd
}

// ownerEmail resolves the owner to act as: an explicit flag wins, otherwise
// the stored identity
func ownerEmail(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	identity, err := cfg.IdentityStore().Load()
	if err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			return "", errors.New("not logged in; log in first or pass --owner")
		}
		return "", err
	}
	return identity.Email, nil
}

func newDocsListCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := ownerEmail(owner)
			if err != nil {
				return err
			}

			var result []Document
			path := "/api/documents?owner=" + url.QueryEscape(email)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner email (defaults to the stored identity)")

	return cmd
}

func newDocsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Document
			if err := client.Get("/api/documents/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDocsSaveCmd() *cobra.Command {
	var id, name, owner, contentFile string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a document from an SFDT file",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := ownerEmail(owner)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(contentFile)
			if err != nil {
				return err
			}

			if name == "" {
				name = filepath.Base(contentFile)
			}

			req := map[string]string{
				"id":          id,
				"name":        name,
				"owner_email": email,
				"content":     string(content),
			}
			var result Document

			if err := client.Post("/api/documents", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Document ID (omit to create)")
	cmd.Flags().StringVar(&name, "name", "", "Document name (defaults to the file name)")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner email (defaults to the stored identity)")
	cmd.Flags().StringVar(&contentFile, "file", "", "Path to the SFDT content (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newDocsImportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Convert a document to SFDT via the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = file.Close() }()

			sfdt, err := client.Upload("/api/documents/import", filepath.Base(args[0]), file)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(sfdt), 0o644); err != nil {
					return err
				}
				out := NewOutput(cfg.Output)
				out.PrintMessage(fmt.Sprintf("Imported to %s", outPath))
				return nil
			}

			fmt.Println(sfdt)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write the SFDT to a file instead of stdout")

	return cmd
}

func newDocsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/documents/" + url.PathEscape(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Deleted.")
			return nil
		},
	}
}
