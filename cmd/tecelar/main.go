// tecelar is the command-line entry to the work-order backend: listing,
// fetching, saving and deleting orders, generating PDFs, and managing
// uploaded images.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tecelar/internal/backend"
	"tecelar/internal/commons"
	"tecelar/internal/config"
	"tecelar/internal/domain"
	"tecelar/internal/dto"
	"tecelar/internal/infrastructure/logger"
)

var (
	cfgFile string
	client  *backend.Client
	zlog    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tecelar",
	Short: "Work-order client for the textile printing backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		var err error
		if cfgFile != "" {
			cfg, err = commons.LoadConfig(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		zlog, err = logger.New(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}

		client = backend.New(cfg.Backend, zlog)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := client.ListOrders(cmd.Context())
		if err != nil {
			return err
		}
		printOrders(orders)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one order as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		order, err := client.GetOrder(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(dto.FromOrder(*order))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <client>",
	Short: "Search orders by client name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := client.SearchByClient(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printOrders(orders)
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <order.json>",
	Short: "Create or update an order from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := readOrderFile(args[0])
		if err != nil {
			return err
		}

		if err := domain.ValidateForSubmit(order); err != nil {
			return err
		}

		var saved *domain.Order
		if order.ID == nil {
			saved, err = client.CreateOrder(cmd.Context(), order)
		} else {
			saved, err = client.UpdateOrder(cmd.Context(), *order.ID, order)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "saved order %d (%s)\n", *saved.ID, saved.Client)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return client.DeleteOrder(cmd.Context(), id)
	},
}

var pdfOut string

var pdfCmd = &cobra.Command{
	Use:   "pdf <id | order.json>",
	Short: "Generate a PDF for a saved order, or a preview from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pdf []byte
		if id, err := parseID(args[0]); err == nil {
			pdf, err = client.GeneratePDF(cmd.Context(), id)
			if err != nil {
				return err
			}
		} else {
			order, err := readOrderFile(args[0])
			if err != nil {
				return err
			}
			if err := domain.ValidateForSubmit(order); err != nil {
				return err
			}
			pdf, err = client.GeneratePDFPreview(cmd.Context(), order)
			if err != nil {
				return err
			}
		}

		if pdfOut == "-" {
			_, err := os.Stdout.Write(pdf)
			return err
		}
		if err := os.WriteFile(pdfOut, pdf, 0o644); err != nil {
			return fmt.Errorf("writing pdf: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", pdfOut, len(pdf))
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <image file>",
	Short: "Upload a JPEG or PNG image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}

		resp, err := client.UploadImage(cmd.Context(), filepath.Base(args[0]), content)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", resp.NomeOriginal, client.ImageURL(resp.CaminhoImagem))
		return nil
	},
}

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Inspect and remove uploaded images",
}

var imageExistsCmd = &cobra.Command{
	Use:   "exists <filename>",
	Short: "Check whether an uploaded image is still present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if client.ImageExists(cmd.Context(), args[0]) {
			fmt.Fprintln(cmd.OutOrStdout(), "exists")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "missing")
		return nil
	},
}

var imageDeleteCmd = &cobra.Command{
	Use:   "delete <filename>",
	Short: "Delete an uploaded image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.DeleteImage(cmd.Context(), args[0])
	},
}

func readOrderFile(path string) (domain.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Order{}, fmt.Errorf("reading order file: %w", err)
	}
	var ordem dto.OrdemServico
	if err := json.Unmarshal(data, &ordem); err != nil {
		return domain.Order{}, fmt.Errorf("parsing order file: %w", err)
	}
	return ordem.ToOrder(), nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not an order id", s)
	}
	return id, nil
}

func printOrders(orders []domain.Order) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tDATE\tTIME\tPAGES")
	for _, o := range orders {
		id := "-"
		if o.ID != nil {
			id = fmt.Sprintf("%d", *o.ID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", id, o.Client, o.Date, o.Time, o.TotalPages())
	}
	w.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a yaml config file")
	pdfCmd.Flags().StringVarP(&pdfOut, "out", "o", "order.pdf", "output file, or - for stdout")

	imageCmd.AddCommand(imageExistsCmd, imageDeleteCmd)
	rootCmd.AddCommand(listCmd, getCmd, searchCmd, saveCmd, deleteCmd, pdfCmd, uploadCmd, imageCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
