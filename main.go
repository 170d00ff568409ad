package main

import (
	"context"
	"encoding/json"
	"os"

	"CareTriage/config"
	"CareTriage/jobs"
	"CareTriage/logger"
	"CareTriage/migrations"
	"CareTriage/routes"
	"CareTriage/schema"
	"CareTriage/server"
	"CareTriage/services"
	"CareTriage/triage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	startServer = server.Start
	isTest      = false
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "caretriage",
		Short:        "Patient records and rule-based symptom triage API",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), triageCmd(), schemaCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file loaded")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Error in loading the config")
		return err
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, "caretriage")

	options := server.GetDefaultOptions(cfg)
	options.JobsEnabled = options.JobsEnabled && !isTest

	options.MigrationHandler = func(ctx context.Context, deps *server.Deps) error {
		if deps.Mongo == nil {
			return nil
		}
		return migrations.Run(ctx, deps.Mongo.Database())
	}

	options.JobsHandler = func(deps *server.Deps) func() {
		probe := jobs.NewHealthProbe(services.New(deps.Store, deps.Cache).WithDatabaseURL(!cfg.UseMemoryStore()), cfg.StoreTimeout)
		stop, err := jobs.StartHealthProbe(cfg.HealthProbeSchedule, probe)
		if err != nil {
			return nil
		}
		return stop
	}

	options.WebServerPreHandler = func(r *gin.Engine, deps *server.Deps) {
		routes.Routes(r, services.New(deps.Store, deps.Cache).WithDatabaseURL(!cfg.UseMemoryStore()))
	}

	return startServer(options)
}

func triageCmd() *cobra.Command {
	var (
		age      int
		sex      string
		symptoms []string
		duration int
	)
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Evaluate symptoms against the rule table and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := map[string]interface{}{
				"age":      age,
				"symptoms": symptoms,
			}
			if cmd.Flags().Changed("sex") {
				data["sex"] = sex
			}
			if cmd.Flags().Changed("duration-days") {
				data["duration_days"] = duration
			}
			req, err := schema.DecodeSymptomCheckRequest(data)
			if err != nil {
				return err
			}
			return printJSON(cmd, triage.Evaluate(req))
		},
	}
	cmd.Flags().IntVar(&age, "age", 0, "age in years (0-120)")
	cmd.Flags().StringVar(&sex, "sex", "", "sex")
	cmd.Flags().StringSliceVarP(&symptoms, "symptom", "s", []string{}, "reported symptom, repeatable or comma separated")
	cmd.Flags().IntVar(&duration, "duration-days", 1, "days since onset")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schemas of the stored entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, schema.Describe(schema.Collections...))
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
