package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/app"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	"github.com/ogurasousui/employee-directory/internal/platform/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNotAdded = errors.New("Please correct the errors in the form")

type cliOptions struct {
	configPath string
	view       string
	logger     *zap.Logger
}

// newRootCmd はコマンドツリーを構築します。logger が nil の場合は設定ファイルから生成します。
func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := &cliOptions{logger: logger}

	root := &cobra.Command{
		Use:           "directory",
		Short:         "Browse and edit the employee directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	root.PersistentFlags().StringVar(&opts.view, "view", ViewTable, "dashboard view: card, list or table")

	root.AddCommand(
		newDashboardCmd(opts),
		newEmployeeFormCmd(opts),
		newDeleteCmd(opts),
	)
	return root
}

func newDashboardCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show remote and local employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
	}
}

func newEmployeeFormCmd(opts *cliOptions) *cobra.Command {
	var in employee.Input

	cmd := &cobra.Command{
		Use:     "employee-form",
		Aliases: []string{"add"},
		Short:   "Add a local employee",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, in)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Designation, "designation", "", "job title")
	cmd.Flags().StringVar(&in.Location, "location", "", "office location")
	cmd.Flags().StringVar(&in.Salary, "salary", "", "salary amount")
	return cmd
}

func newDeleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a local employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return runDelete(cmd, opts, id)
		},
	}
}

func runDashboard(cmd *cobra.Command, opts *cliOptions) error {
	if !validView(opts.view) {
		return fmt.Errorf("unknown view %q", opts.view)
	}

	dir, err := openDirectory(cmd, opts)
	if err != nil {
		return err
	}
	defer dir.Close()

	result, err := dir.Service.ListEmployees(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderDashboard(result, opts.view))
	return nil
}

func runAdd(cmd *cobra.Command, opts *cliOptions, in employee.Input) error {
	dir, err := openDirectory(cmd, opts)
	if err != nil {
		return err
	}
	defer dir.Close()

	created, err := dir.Service.CreateEmployee(cmd.Context(), in)
	var verrs employee.ValidationErrors
	if errors.As(err, &verrs) {
		fmt.Fprintln(cmd.ErrOrStderr(), renderValidation(verrs))
		return errNotAdded
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderAdded(created))
	return nil
}

func runDelete(cmd *cobra.Command, opts *cliOptions, id int) error {
	dir, err := openDirectory(cmd, opts)
	if err != nil {
		return err
	}
	defer dir.Close()

	if err := dir.Service.DeleteEmployee(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Employee %d removed\n", id)
	return nil
}

func openDirectory(cmd *cobra.Command, opts *cliOptions) (*app.App, error) {
	path := opts.configPath
	if path == "" {
		path = config.PathFromEnv()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := opts.logger
	if logger == nil {
		if logger, err = logging.New(cfg.Log); err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
		opts.logger = logger
	}

	return app.Build(cmd.Context(), cfg, logger)
}
