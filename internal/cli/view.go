package cli

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/project"
	"github.com/piwi3910/OpenCutList/internal/ui"
)

func newViewCommand(opts *globalOptions) *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:   "view [project-file]",
		Short: "Open the desktop viewer",
		Long: `Open a window showing every bin of the project. Without a file the example
project is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := ui.ThemeByName(themeName)
			if err != nil {
				return err
			}
			proj := model.ExampleProject()
			opts.config.ApplyToSettings(&proj.Settings)
			if len(args) == 1 {
				p, err := project.Load(args[0])
				if err != nil {
					return err
				}
				proj = p
				rememberProject(opts, args[0])
			}

			application := app.NewWithID("com.piwi3910.opencutlist")
			application.Settings().SetTheme(th)
			window := application.NewWindow("OpenCutList - " + proj.Name)

			viewer := ui.NewApp(window, proj, opts.logger)
			viewer.SetupMenus()
			window.SetContent(viewer.Build())
			window.Resize(fyne.NewSize(1000, 700))
			window.CenterOnScreen()
			window.ShowAndRun()
			return nil
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "system", "color theme: system, light or dark")
	return cmd
}
