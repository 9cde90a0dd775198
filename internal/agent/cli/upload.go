package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewUploadCmd создаёт CLI-команду отправки снимка на классификацию.
//
// Команда читает файл снимка, загружает его на сервер через multipart-запрос
// и выводит результат: метку (NORMAL/PNEUMONIA) и уверенность в процентах.
// Требует предварительного входа (xray login).
//
// Пример использования:
//
//	xray upload --file chest.jpeg
func NewUploadCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Отправить снимок на классификацию",
		Long: `Отправка рентгеновского снимка на классификацию.

Пример:
  xray upload --file chest.jpeg
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.Token == "" {
				return errors.New("not logged in: run `xray login` first")
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}
			defer f.Close()

			c := NewAPIClient(app.ServerURL)
			resp, err := c.Upload(filepath.Base(file), f, app.Creds.Token)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%.2f%%)\n", resp.Filename, resp.Label, resp.Confidence)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to chest X-ray image (jpeg/png/gif)")
	cmd.MarkFlagRequired("file")

	return cmd
}
