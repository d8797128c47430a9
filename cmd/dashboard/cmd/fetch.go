package cmd

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"logindash/internal/app/dashboard"
	"logindash/internal/app/dashboard/render"
)

var (
	fetchLimit           int
	fetchPage            int
	fetchEncrypted       bool
	fetchGroupDuplicates bool
	outputFormat         string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Загрузить одну страницу записей",
	Long: `Выполняет один запрос к login-data API и печатает результат.

Значения по умолчанию совпадают с интерактивным режимом: --limit 5, --page 1,
--encrypted=true, --group-duplicates=false. Лимит ограничивается диапазоном 0..100.

Форматы вывода: table, json, csv, yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatter, err := render.New(outputFormat, terminalWidth())
		if err != nil {
			return err
		}

		state := dashboard.NewSession().Initialize()
		state.SetLimit(fetchLimit)
		state.SetPage(fetchPage)
		if fetchEncrypted != state.IsEncrypted {
			state.ToggleEncrypted()
		}
		if fetchGroupDuplicates != state.GroupDuplicates {
			state.ToggleGroupDuplicates()
		}

		return runFetch(cmd.Context(), controller, *state, formatter, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// runFetch печатает ошибку красным, затем пустой результат, и возвращает errSilent
func runFetch(ctx context.Context, c *dashboard.Controller, state dashboard.ViewState,
	formatter render.Formatter, out, errOut io.Writer) error {
	res := c.Load(ctx, state)

	if res.Failed() {
		color.New(color.FgRed).Fprintln(errOut, res.Message())
	}

	data, err := formatter.Format(res.Records)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}

	if res.Failed() {
		return errSilent
	}
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func init() {
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", dashboard.DefaultLimit, "количество записей (0..100)")
	fetchCmd.Flags().IntVar(&fetchPage, "page", dashboard.DefaultPage, "номер страницы")
	fetchCmd.Flags().BoolVar(&fetchEncrypted, "encrypted", dashboard.DefaultIsEncrypted, "показывать зашифрованные ip и device_id")
	fetchCmd.Flags().BoolVar(&fetchGroupDuplicates, "group-duplicates", dashboard.DefaultGroupDuplicates, "только повторные входы с тех же ip и устройства")
	fetchCmd.Flags().StringVarP(&outputFormat, "format", "o", render.FormatTable, "формат вывода: table, json, csv, yaml")
}
