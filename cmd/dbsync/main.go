// Command dbsync sincroniza el almacén primario con el secundario fuera del servidor HTTP.
//
//	dbsync run       una pasada completa
//	dbsync watch     pasadas continuas hasta SIGINT/SIGTERM
//	dbsync check     conteos de ambos almacenes
//	dbsync migrate   añade columnas nuevas en ambos almacenes
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dbsync",
		Short:         "Sincronización entre el almacén primario y el secundario de AdoptEase",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newWatchCommand())
	root.AddCommand(newCheckCommand())
	root.AddCommand(newMigrateCommand())
	return root
}
