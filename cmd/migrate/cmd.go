package migrate

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/sailhq/sailpost/assets/migrations/pgsql_applicantrepo"
	"github.com/sailhq/sailpost/container"
	"github.com/sailhq/sailpost/pkg/migration"
	"github.com/sailhq/sailpost/pkg/multidb"
	"github.com/sailhq/sailpost/pkg/tracer"
	"github.com/satori/uuid"
	"github.com/yusufsyaifudin/ylog"
)

const (
	ExitSuccess = 0
	ExitErr     = -1

	migrationTable = "migration_records_applicant_repo"
)

type Cmd struct {
	flags      *flag.FlagSet
	configFile string
}

func NewCmd() func() (cli.Command, error) {
	return func() (cli.Command, error) {
		cmd := &Cmd{}
		err := cmd.init()
		return cmd, err
	}
}

var _ cli.Command = (*Cmd)(nil)
var _ cli.CommandFactory = NewCmd()

func (c *Cmd) init() error {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.configFile, "config", "config.yml",
		"Config file to load")
	c.flags.StringVar(&c.configFile, "c", "config.yml",
		"Alias for config file to load")
	return nil
}

func (c *Cmd) Help() string {
	return `migrate [-c config.yml] <up|down|print> will migrate the applicant database`
}

func (c *Cmd) Synopsis() string {
	return `Run applicant database migrations`
}

func (c *Cmd) Run(args []string) int {
	err := c.flags.Parse(args)
	if err != nil {
		log.Printf("error parsing config argument: %s", err)
		return ExitErr
	}

	direction := "up"
	if rest := c.flags.Args(); len(rest) > 0 {
		direction = strings.ToLower(strings.TrimSpace(rest[0]))
	}

	ctx := context.Background()
	traceLog, err := ylog.NewTracer(tracer.LogData{
		RemoteAddr: "system",
		TraceID:    uuid.NewV4().String(),
	}, ylog.WithTag("tracer"))
	if err != nil {
		log.Printf("error prepare tracer system data: %s", err)
		return ExitErr
	}

	ctx = ylog.Inject(ctx, traceLog)

	cfg, err := container.LoadConfig(c.configFile)
	if err != nil {
		ylog.Error(ctx, "cannot load config", ylog.KV("error", err))
		return ExitErr
	}

	err = c.migrate(ctx, cfg, direction)
	if err != nil {
		ylog.Error(ctx, "migration failed", ylog.KV("error", err))
		return ExitErr
	}

	return ExitSuccess
}

func (c *Cmd) migrate(ctx context.Context, cfg container.Config, direction string) error {
	dbLabel := cfg.Services.Applicant.DBLabel
	dbResource, ok := cfg.DatabaseResources[dbLabel]
	if !ok {
		return fmt.Errorf("unknown database key %s on applicant repo", dbLabel)
	}

	var migrations []migration.Migrate
	switch dbResource.Driver {
	case "postgres":
		migrations = []migration.Migrate{
			new(pgsql_applicantrepo.CreateApplicantsTable1714003200),
		}

	default:
		return fmt.Errorf("unknown dialect %s", dbResource.Driver)
	}

	if direction == "print" {
		for _, mig := range migrations {
			fmt.Println(mig.ID(ctx))
			fmt.Println(`
-- +migrate Up
-- SQL in section 'Up' is executed when this migration is applied`)
			up, _ := mig.Up(ctx)
			fmt.Println(up)
			fmt.Println(`
-- +migrate Down
-- SQL section 'Down' is executed when this migration is rolled back`)
			down, _ := mig.Down(ctx)
			fmt.Println(down)
		}

		return nil
	}

	dbConn, err := multidb.NewSqlDbConnMaker(multidb.SqlDbConnMakerConfig{
		Config: multidb.DatabaseResources{
			dbLabel: {
				Driver:   multidb.Driver(dbResource.Driver),
				Postgres: multidb.GoSqlDb(dbResource.Postgres),
			},
		},
	})
	if err != nil {
		return err
	}

	defer func() {
		if _err := dbConn.Close(); _err != nil {
			ylog.Error(ctx, "error close db", ylog.KV("error", _err))
		}
	}()

	sqlConn, err := dbConn.GetSqlx(multidb.Postgres, dbLabel)
	if err != nil {
		return err
	}

	err = sqlConn.Ping()
	if err != nil {
		return fmt.Errorf("ping db error: %w", err)
	}

	ylog.Info(ctx, "trying to migrate")
	mig, err := migration.NewSQLImmigration(ctx, migration.SQLImmigrationConfig{
		Dialect:        dbResource.Driver,
		DB:             sqlConn.DB,
		MigrationTable: migrationTable,
		Migrations:     migrations,
	})
	if err != nil {
		return fmt.Errorf("prepare immigration error: %w", err)
	}

	switch direction {
	case "up":
		err = mig.Up()
	case "down":
		err = mig.Down()
	default:
		return fmt.Errorf("unknown sub command direction: '%s'", direction)
	}

	if err != nil {
		return fmt.Errorf("query db error: %w", err)
	}

	ylog.Info(ctx, "success migrate")
	return nil
}
