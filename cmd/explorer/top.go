package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cookjwelch/golf-market-explorer/internal/analytics"
	"github.com/cookjwelch/golf-market-explorer/internal/config"
	"github.com/cookjwelch/golf-market-explorer/internal/dataset"
	"github.com/cookjwelch/golf-market-explorer/internal/domain"
	"github.com/cookjwelch/golf-market-explorer/internal/observability"
	"github.com/cookjwelch/golf-market-explorer/internal/pipeline"
)

// scoreFlags are the weight/filter flags shared by the top and export
// commands, mirroring the dashboard's sidebar controls.
type scoreFlags struct {
	datasetPath string
	preset      string

	wIncome     float64
	wEducation  float64
	wDiversity  float64
	wPopulation float64
	wAge        float64

	minScore   float64
	regions    []string
	metroOnly  bool
	incomeTier string
}

func (f *scoreFlags) register(cmd *cobra.Command) {
	defaults := domain.DefaultWeights()

	cmd.Flags().StringVar(&f.datasetPath, "dataset", "data/census.csv", "path to the census CSV")
	cmd.Flags().StringVar(&f.preset, "preset", "", "named weight preset (overrides the w-* flags)")

	cmd.Flags().Float64Var(&f.wIncome, "w-income", defaults.Income, "income weight")
	cmd.Flags().Float64Var(&f.wEducation, "w-education", defaults.Education, "education weight")
	cmd.Flags().Float64Var(&f.wDiversity, "w-diversity", defaults.Diversity, "diversity weight")
	cmd.Flags().Float64Var(&f.wPopulation, "w-population", defaults.Population, "population weight")
	cmd.Flags().Float64Var(&f.wAge, "w-age", defaults.Age, "younger-age weight")

	cmd.Flags().Float64Var(&f.minScore, "min-score", 0, "minimum opportunity score")
	cmd.Flags().StringSliceVar(&f.regions, "regions", nil, "restrict to these regions")
	cmd.Flags().BoolVar(&f.metroOnly, "metro-only", false, "metro counties only")
	cmd.Flags().StringVar(&f.incomeTier, "income-tier", "all", "all, affluent, or non_affluent")
}

func (f *scoreFlags) request() (pipeline.Request, error) {
	weights := domain.WeightConfig{
		Income:     f.wIncome,
		Education:  f.wEducation,
		Diversity:  f.wDiversity,
		Population: f.wPopulation,
		Age:        f.wAge,
	}
	if f.preset != "" {
		preset, err := findConfiguredPreset(f.preset)
		if err != nil {
			return pipeline.Request{}, err
		}
		weights = preset
	}
	if err := weights.Validate(); err != nil {
		return pipeline.Request{}, err
	}

	tier, err := domain.ParseIncomeTier(f.incomeTier)
	if err != nil {
		return pipeline.Request{}, err
	}

	return pipeline.Request{
		Weights: weights.Normalized(),
		Criteria: domain.FilterCriteria{
			MinScore:   f.minScore,
			Regions:    f.regions,
			MetroOnly:  f.metroOnly,
			IncomeTier: tier,
		},
	}, nil
}

// explore loads the dataset and runs one pipeline pass for a CLI command.
func (f *scoreFlags) explore() (pipeline.View, error) {
	req, err := f.request()
	if err != nil {
		return pipeline.View{}, err
	}

	records, err := dataset.Load(f.datasetPath)
	if err != nil {
		return pipeline.View{}, err
	}
	store := dataset.NewStore(records, time.Now())

	logger := observability.NewLogger("warn", "text")
	explorer := pipeline.New(store, logger, observability.NewMetrics(), 0)
	return explorer.Explore(req), nil
}

func newTopCmd() *cobra.Command {
	var flags scoreFlags
	var n int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the top counties by opportunity score",
		RunE: func(_ *cobra.Command, _ []string) error {
			view, err := flags.explore()
			if err != nil {
				return err
			}
			return printTop(analytics.TopN(view.Counties, n), view.Summary)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&n, "n", 25, "number of counties to show")
	return cmd
}

func printTop(counties []domain.ScoredCounty, summary analytics.Summary) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCOUNTY\tSTATE\tSCORE\tINCOME\tCOLLEGE%\tAGE\tPOP\tAFFLUENT")
	for i, c := range counties {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t$%.0f\t%.1f\t%.1f\t%d\t%t\n",
			i+1, c.County, c.State, c.Opportunity,
			c.MedianIncome, c.PctCollege, c.MedianAge, c.Population, c.Affluent)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d counties matched, mean score %.1f, total population %d\n",
		summary.Counties, summary.MeanScore, summary.TotalPopulation)
	return nil
}

func findConfiguredPreset(name string) (domain.WeightConfig, error) {
	presets, err := config.LoadPresets(os.Getenv("WEIGHT_PRESETS_PATH"))
	if err != nil {
		return domain.WeightConfig{}, err
	}
	preset, ok := config.FindPreset(presets, name)
	if !ok {
		return domain.WeightConfig{}, fmt.Errorf("unknown preset: %q", name)
	}
	return preset.Weights(), nil
}
