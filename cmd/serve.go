package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/matteflyt/internal/auth"
	"github.com/abhisek/matteflyt/internal/diploma"
	"github.com/abhisek/matteflyt/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the diploma HTTP server",
	Long: `Serve diploma submission and the admin diploma listing over HTTP.

Admin login needs admin.password_hash (see "matteflyt admin hash-password").
Without admin.jwt_secret a random secret is generated, so admin tokens are
invalidated on restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		env, err := openEnv(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer env.Close()

		cfg := env.cfg
		addr := cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		secret := cfg.Admin.JWTSecret
		if secret == "" {
			secret, err = auth.RandomSecret()
			if err != nil {
				return err
			}
			env.log.Warn("admin.jwt_secret not set; using a random secret for this run")
		}
		issuer, err := auth.NewIssuer(secret, cfg.Admin.TokenTTL)
		if err != nil {
			return err
		}
		if cfg.Admin.PasswordHash == "" {
			env.log.Warn("admin.password_hash not set; admin login is disabled")
		}

		h := server.NewRouter(server.RouterConfig{
			Diplomas:          diploma.NewService(env.store.DiplomaRepo(), env.log),
			Issuer:            issuer,
			AdminPasswordHash: cfg.Admin.PasswordHash,
			Log:               env.log,
		})
		return server.Run(ctx, addr, h, env.log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
