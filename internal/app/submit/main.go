package submit

import (
	"os"

	"github.com/airenas/speechsubmit/internal/pkg/cmdapp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "submitJob [audio file]",
	Short: "Speech gateway job submitter",
	Long:  `Logs in to the speech gateway and uploads an audio file for transcription`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSubmit,
}

var statusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Prints the current job status",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var resultCmd = &cobra.Command{
	Use:   "result <id>",
	Short: "Downloads the job result archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runResult,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	initDefaults(cmdapp.Config)

	rootCmd.PersistentFlags().StringP("output", "o", formatJSON, "Output format: json|yaml")
	cmdapp.Config.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
	rootCmd.PersistentFlags().String("url", "", "Gateway URL")
	cmdapp.Config.BindPFlag("gateway.url", rootCmd.PersistentFlags().Lookup("url"))

	rootCmd.Flags().String("lang", "", "Audio language")
	cmdapp.Config.BindPFlag("job.lang", rootCmd.Flags().Lookup("lang"))
	rootCmd.Flags().String("queue", "", "Gateway queue")
	cmdapp.Config.BindPFlag("job.queue", rootCmd.Flags().Lookup("queue"))

	resultCmd.Flags().String("out", "", "Result file (default is <id>.zip)")

	rootCmd.AddCommand(statusCmd, resultCmd)
}

//Execute runs the command line app
func Execute() {
	cmdapp.Execute(rootCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cmdapp.Config.Set("job.file", args[0])
	}
	cfg, data, err := prepare(cmd)
	if err != nil {
		return err
	}
	if cfg.Upload.FilePath == "" {
		err = errors.New("No audio file provided")
		cmdapp.Log.Error(err)
		cmdapp.LogIf(cmd.Usage())
		return err
	}
	ctx, cancel := cmdapp.NewSignalContext()
	defer cancel()
	_, err = Run(ctx, cfg, data)
	return err
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, data, err := prepare(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := cmdapp.NewSignalContext()
	defer cancel()
	_, err = RunStatus(ctx, cfg, args[0], data)
	return err
}

func runResult(cmd *cobra.Command, args []string) error {
	cfg, data, err := prepare(cmd)
	if err != nil {
		return err
	}
	fileName, _ := cmd.Flags().GetString("out")
	if fileName == "" {
		fileName = args[0] + ".zip"
	}
	ctx, cancel := cmdapp.NewSignalContext()
	defer cancel()
	_, err = RunResult(ctx, cfg, args[0], fileName, data)
	return err
}

// prepare builds the run config, errors are logged here and not printed again by cobra
func prepare(cmd *cobra.Command) (*Config, *ServiceData, error) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cfg, err := newConfig(cmdapp.Config)
	if err != nil {
		cmdapp.Log.WithError(err).Error("Wrong config")
		return nil, nil, err
	}
	data, err := newServiceData(cfg, os.Stdout)
	if err != nil {
		cmdapp.Log.WithError(err).Error("Can't init")
		return nil, nil, err
	}
	return cfg, data, nil
}
