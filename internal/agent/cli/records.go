package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewRecordsCmd создаёт CLI-команду просмотра журнала предсказаний.
//
// Команда запрашивает у сервера все записи текущего пользователя
// и выводит их таблицей в порядке добавления.
// Требует предварительного входа (xray login).
//
// Пример использования:
//
//	xray records
func NewRecordsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Показать журнал предсказаний",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.Token == "" {
				return errors.New("not logged in: run `xray login` first")
			}

			c := NewAPIClient(app.ServerURL)
			resp, err := c.Records(app.Creds.Token)
			if err != nil {
				return err
			}

			if len(resp.Records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no records")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILENAME\tLABEL\tCONFIDENCE\tTIMESTAMP")
			for _, rec := range resp.Records {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", rec.Filename, rec.Label, rec.Confidence, rec.Timestamp)
			}
			return w.Flush()
		},
	}
}
