package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	dbsync "github.com/jhoicas/adoptease-api/internal/application/sync"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
	"github.com/jhoicas/adoptease-api/internal/infrastructure/storage"
	"github.com/jhoicas/adoptease-api/pkg/config"
	"github.com/jhoicas/adoptease-api/pkg/logger"
)

const (
	policyFlag   = "policy"
	intervalFlag = "interval"
	resetFlag    = "reset"
)

// newSyncFlags crea un juego de flags por comando. Vacío = valor de la configuración.
func newSyncFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		policyFlag: &cobraflags.StringFlag{
			Name:  policyFlag,
			Value: "",
			Usage: "Política de sincronización (mirror, merge). Por defecto SYNC_POLICY",
		},
		intervalFlag: &cobraflags.StringFlag{
			Name:  intervalFlag,
			Value: "",
			Usage: "Intervalo entre pasadas para watch (ej. 5m). Por defecto SYNC_INTERVAL",
		},
	}
}

// env agrupa lo que necesitan todos los subcomandos.
type env struct {
	cfg       *config.Config
	log       *logger.Logger
	primary   repository.Store
	secondary repository.Store
}

func (e *env) Close() {
	if e.secondary != nil {
		e.secondary.Close()
	}
	if e.primary != nil {
		e.primary.Close()
	}
}

// applyFlags sobrescribe la configuración con los flags informados.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags map[string]cobraflags.Flag) error {
	if flags != nil {
		if p := strings.TrimSpace(flags[policyFlag].GetString()); p != "" {
			cfg.Sync.Policy = strings.ToLower(p)
		}
		if raw := strings.TrimSpace(flags[intervalFlag].GetString()); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("--%s inválido: %w", intervalFlag, err)
			}
			cfg.Sync.Interval = d
		}
	}
	if cmd.Flags().Lookup(resetFlag) != nil && cmd.Flags().Changed(resetFlag) {
		cfg.Sync.ResetSecondary, _ = cmd.Flags().GetBool(resetFlag)
	}
	return nil
}

// openEnv carga la configuración, aplica los flags y abre ambos almacenes.
// Sin secundario configurado devuelve error: ningún subcomando tiene sentido sin él.
func openEnv(cmd *cobra.Command, flags map[string]cobraflags.Flag) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg, flags); err != nil {
		return nil, err
	}
	if !cfg.DB.HasSecondary() {
		return nil, fmt.Errorf("SECONDARY_DATABASE_URL no configurada")
	}

	e := &env{cfg: cfg, log: logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})}
	ctx := cmd.Context()
	if e.primary, err = storage.Open(ctx, cfg.DB.PrimaryURL); err != nil {
		return nil, fmt.Errorf("primario %s: %w", storage.Redact(cfg.DB.PrimaryURL), err)
	}
	if e.secondary, err = storage.Open(ctx, cfg.DB.SecondaryURL); err != nil {
		e.Close()
		return nil, fmt.Errorf("secundario %s: %w", storage.Redact(cfg.DB.SecondaryURL), err)
	}
	for _, s := range []repository.Store{e.primary, e.secondary} {
		if err := s.EnsureSchema(ctx); err != nil {
			e.Close()
			return nil, fmt.Errorf("esquema %s: %w", s.Dialect(), err)
		}
	}
	return e, nil
}

func (e *env) engine() (*dbsync.Engine, error) {
	return dbsync.NewEngine(e.primary, e.secondary, dbsync.Options{
		Policy:         e.cfg.Sync.Policy,
		ResetSecondary: e.cfg.Sync.ResetSecondary,
	}, e.log)
}

func newRunCommand() *cobra.Command {
	flags := newSyncFlags()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ejecuta una pasada completa de sincronización",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd, flags)
			if err != nil {
				return err
			}
			defer e.Close()
			engine, err := e.engine()
			if err != nil {
				return err
			}
			rep, err := engine.Sync(cmd.Context())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	cmd.Flags().Bool(resetFlag, false, "Elimina y recrea las tablas del secundario antes de copiar (mirror)")
	return cmd
}

func newWatchCommand() *cobra.Command {
	flags := newSyncFlags()
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sincroniza de forma continua hasta recibir SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd, flags)
			if err != nil {
				return err
			}
			defer e.Close()
			if e.cfg.Sync.Interval <= 0 {
				return fmt.Errorf("watch requiere --%s o SYNC_INTERVAL > 0", intervalFlag)
			}
			engine, err := e.engine()
			if err != nil {
				return err
			}
			return dbsync.NewWatcher(engine, e.cfg.Sync.Interval, e.cfg.Sync.RetryBackoff, e.log).Run(cmd.Context())
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	cmd.Flags().Bool(resetFlag, false, "Elimina y recrea las tablas del secundario en cada pasada (mirror)")
	return cmd
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Muestra los conteos de usuarios y perros de ambos almacenes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.Close()
			engine, err := e.engine()
			if err != nil {
				return err
			}
			v, err := engine.Verify(cmd.Context())
			if err != nil {
				return err
			}
			printVerify(cmd.OutOrStdout(), v)
			if !v.InSync {
				return fmt.Errorf("los almacenes no coinciden")
			}
			return nil
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Añade las columnas updated_at y gender donde falten",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.Close()
			for _, s := range []repository.Store{e.primary, e.secondary} {
				if err := s.MigrateColumns(cmd.Context()); err != nil {
					return fmt.Errorf("migrar %s: %w", s.Dialect(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: columnas al día\n", s.Dialect())
			}
			return nil
		},
	}
}

func printReport(w io.Writer, rep *dbsync.Report) {
	if rep.Skipped {
		fmt.Fprintln(w, "sin almacén secundario: nada que sincronizar")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run\t%s\tpolítica %s\t%s\n", rep.RunID, rep.Policy, rep.Duration().Round(time.Millisecond))
	fmt.Fprintln(tw, "TABLA\tSENTIDO\tAÑADIDAS\tACTUALIZADAS\tELIMINADAS\tSIN CAMBIOS")
	row := func(table, dir string, c dbsync.Counts) {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n", table, dir, c.Added, c.Updated, c.Removed, c.Unchanged)
	}
	row("user", "→ secundario", rep.Users)
	row("dog", "→ secundario", rep.Dogs)
	if rep.Policy == dbsync.PolicyMerge {
		row("user", "→ primario", rep.UsersToPrimary)
		row("dog", "→ primario", rep.DogsToPrimary)
	}
	_ = tw.Flush()
}

func printVerify(w io.Writer, v *dbsync.VerifyReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALMACÉN\tMOTOR\tUSUARIOS\tPERROS")
	fmt.Fprintf(tw, "primario\t%s\t%d\t%d\n", v.Primary.Dialect, v.Primary.Users, v.Primary.Dogs)
	if v.Secondary != nil {
		fmt.Fprintf(tw, "secundario\t%s\t%d\t%d\n", v.Secondary.Dialect, v.Secondary.Users, v.Secondary.Dogs)
	}
	_ = tw.Flush()
	if v.InSync {
		fmt.Fprintln(w, "en sincronía: sí")
	} else {
		fmt.Fprintln(w, "en sincronía: no")
	}
}
