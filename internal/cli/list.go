package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/mrops-br/catalog-viewer/internal/app/dto"
	"github.com/mrops-br/catalog-viewer/internal/app/service"
	"github.com/mrops-br/catalog-viewer/internal/domain"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/fakestore"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/repository/memory"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/telemetry"
	"github.com/spf13/cobra"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	criteria := domain.DefaultCriteria()
	page := 1

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the filtered catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := telemetry.NewLogger(&cfg.OTLP, telemetry.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr())
			tracer := tracenoop.NewTracerProvider().Tracer(instrumentationName)
			meter := metricnoop.NewMeterProvider().Meter(instrumentationName)

			source := fakestore.NewClient(&cfg.Upstream, tracer, meter, logger)
			svc := service.NewCatalogService(source, memory.NewSessionRepository(tracer, logger), tracer, meter, logger)

			listing, err := svc.Browse(cmd.Context(), criteria, page)
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}
			return printListing(cmd.OutOrStdout(), listing)
		},
	}

	cmd.Flags().StringVar(&criteria.Category, "category", "", "Only show this category")
	cmd.Flags().Float64Var(&criteria.MaxPrice, "max-price", domain.DefaultMaxPrice, "Maximum price")
	cmd.Flags().BoolVar(&criteria.FourStars, "four-stars", false, "Rated 4 stars and above")
	cmd.Flags().BoolVar(&criteria.FiveStars, "five-stars", false, "Rated 5 stars only")
	cmd.Flags().StringVar(&criteria.Search, "search", "", "Case-insensitive title search")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")

	return cmd
}

func printListing(out io.Writer, listing *dto.ListingResponse) error {
	if listing.Matching == 0 {
		_, err := fmt.Fprintln(out, "No products found.")
		return err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tRATING")
	for _, p := range listing.Products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t$%s\t%s (%s)\n",
			p.ID,
			p.Title,
			p.Category,
			humanize.FormatFloat("#,###.##", p.Price),
			strconv.FormatFloat(p.Rate, 'f', 1, 64),
			humanize.Comma(int64(p.ReviewCount)),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(&buf, "\nPage %d of %d, %d of %d products match\n",
		listing.Page, len(listing.Pages), listing.Matching, listing.Total)

	_, err := buf.WriteTo(out)
	return err
}
