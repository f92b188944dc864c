package cli

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xtding233/legend-sim/internal/api"
	"github.com/xtding233/legend-sim/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over gRPC and HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("grpc-addr", ":9090", "gRPC listen address (empty to disable)")
	serveCmd.Flags().String("http-addr", ":8080", "HTTP listen address (empty to disable)")
	serveCmd.Flags().Duration("watch-interval", 2*time.Second, "How often to poll config files for changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, loader, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	grpcAddr, _ := cmd.Flags().GetString("grpc-addr")
	httpAddr, _ := cmd.Flags().GetString("http-addr")
	interval, _ := cmd.Flags().GetDuration("watch-interval")
	profile, _ := cmd.Flags().GetString("profile")

	svc := api.NewService(settings)
	errCh := make(chan error, 2)

	if paths := loader.Paths(profile); len(paths) > 0 && interval > 0 {
		seed := seedFlag(cmd)
		w := config.NewFileWatcher(paths, interval, func(path string) {
			loader.Invalidate()
			s, err := resolveSettings(loader, profile, seed)
			if err != nil {
				log.Printf("reload %s: %v (keeping previous settings)", path, err)
				return
			}
			svc.Update(s)
			log.Printf("reloaded config from %s (version %q)", path, s.Version)
		})
		w.Start()
		defer w.Stop()
	}

	var gs interface{ GracefulStop() }
	if grpcAddr != "" {
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			return err
		}
		srv := api.NewGRPCServer(svc)
		gs = srv
		go func() {
			log.Printf("grpc listening on %s ...", lis.Addr())
			errCh <- srv.Serve(lis)
		}()
	}

	var hs *http.Server
	if httpAddr != "" {
		hs = &http.Server{
			Addr:              httpAddr,
			Handler:           api.NewHTTPHandler(svc),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Printf("http listening on %s ...", httpAddr)
			if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	if gs == nil && hs == nil {
		return errors.New("serve: both --grpc-addr and --http-addr are empty")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-ctx.Done():
		log.Println("shutting down ...")
	case runErr = <-errCh:
		if runErr != nil {
			log.Printf("server stopped: %v", runErr)
		}
	}
	stopServers(hs, gs)
	return runErr
}

// stopServers drains whichever servers were started. Either may be nil.
func stopServers(hs *http.Server, gs interface{ GracefulStop() }) {
	if hs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(ctx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}
	if gs != nil {
		gs.GracefulStop()
	}
}
