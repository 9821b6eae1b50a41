package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/jonathan/stylist-expert/internal/observability"
	validation "github.com/jonathan/stylist-expert/internal/schemas"
	"github.com/jonathan/stylist-expert/internal/types"
	"github.com/jonathan/stylist-expert/schemas"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend outfits for a profile",
	Long: `Runs the inference engine locally for one profile given by flags or --input,
or for an array of profiles given by --batch, and prints the ranked recommendations.`,
	RunE: runRecommend,
}

var (
	recommendInput   string
	recommendBatch   string
	recommendJSON    bool
	recommendVerbose bool
	recommendProfile types.UserInput
)

func init() {
	recommendCmd.Flags().StringVar(&recommendProfile.Gender, "gender", "", "Gender, e.g. male or female")
	recommendCmd.Flags().StringVar(&recommendProfile.AgeRange, "age-range", "", "Age range, e.g. 25-35")
	recommendCmd.Flags().StringVar(&recommendProfile.Occasion, "occasion", "", "Occasion, e.g. formal, casual, sports")
	recommendCmd.Flags().StringVar(&recommendProfile.Weather, "weather", "", "Weather, e.g. hot, cold, rainy")
	recommendCmd.Flags().StringVar(&recommendProfile.BodyType, "body-type", "", "Body type, e.g. slim, athletic")
	recommendCmd.Flags().StringVar(&recommendProfile.PreferredStyle, "style", "", "Preferred style, e.g. classic, modern")
	recommendCmd.Flags().StringVar(&recommendProfile.ColorPreference, "color", "", "Colour preference, e.g. neutral")
	recommendCmd.Flags().StringVar(&recommendProfile.Height, "height", "", "Height, e.g. tall")
	recommendCmd.Flags().StringVarP(&recommendInput, "input", "i", "", "Read the profile from a JSON or YAML file; flags override its values")
	recommendCmd.Flags().StringVar(&recommendBatch, "batch", "", "Read a JSON or YAML array of profiles and recommend for each")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print JSON instead of formatted text")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print the profile and inference trace")

	recommendCmd.MarkFlagsMutuallyExclusive("batch", "input")
	rootCmd.AddCommand(recommendCmd)
}

// profileFlags maps flag names to the attribute they set.
var profileFlags = map[string]func(in *types.UserInput) *string{
	"gender":    func(in *types.UserInput) *string { return &in.Gender },
	"age-range": func(in *types.UserInput) *string { return &in.AgeRange },
	"occasion":  func(in *types.UserInput) *string { return &in.Occasion },
	"weather":   func(in *types.UserInput) *string { return &in.Weather },
	"body-type": func(in *types.UserInput) *string { return &in.BodyType },
	"style":     func(in *types.UserInput) *string { return &in.PreferredStyle },
	"color":     func(in *types.UserInput) *string { return &in.ColorPreference },
	"height":    func(in *types.UserInput) *string { return &in.Height },
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	kb, err := loadKnowledgeBase(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if recommendBatch != "" {
		inputs, err := readBatch(recommendBatch)
		if err != nil {
			return err
		}
		engine := newEngine(kb)
		results, err := recommendAll(ctx, inputs, engine.Infer)
		if err != nil {
			return err
		}
		return printBatch(out, inputs, results)
	}

	input, err := resolveInput(cmd)
	if err != nil {
		return err
	}

	tracer := &observability.Tracer{}
	engine := newEngine(kb, tracer)
	recs := engine.Infer(input)

	if recommendJSON {
		return writeJSON(out, types.RecommendationResponse{Recommendations: recs})
	}

	printer := observability.NewPrinter(out)
	if recommendVerbose {
		printer.PrintUserInput(input)
		printer.PrintTrace(tracer)
	}
	printer.PrintRecommendations(recs)
	return nil
}

// resolveInput merges the --input file with explicitly set flags and validates the result.
func resolveInput(cmd *cobra.Command) (types.UserInput, error) {
	var input types.UserInput
	if recommendInput != "" {
		loaded, err := readProfile(recommendInput)
		if err != nil {
			return input, err
		}
		input = loaded
	}

	for name, field := range profileFlags {
		if cmd.Flags().Changed(name) {
			*field(&input) = *field(&recommendProfile)
		}
	}

	if err := validateInput(input); err != nil {
		return input, err
	}
	return input, nil
}

// readProfile reads a single profile document.
func readProfile(path string) (types.UserInput, error) {
	var input types.UserInput
	data, err := readDocument(path)
	if err != nil {
		return input, err
	}
	if err := validation.ValidateJSONBytes(schemas.MustRead(schemas.UserInputSchema), data); err != nil {
		return input, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return input, nil
}

// readBatch reads an array of profiles and validates each one.
func readBatch(path string) ([]types.UserInput, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("batch file %s must contain an array of profiles: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("batch file %s contains no profiles", path)
	}

	inputSchema, err := validation.Compile(schemas.MustRead(schemas.UserInputSchema))
	if err != nil {
		return nil, err
	}

	inputs := make([]types.UserInput, len(raw))
	for i, doc := range raw {
		if err := inputSchema.ValidateBytes(doc); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		if err := json.Unmarshal(doc, &inputs[i]); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		if err := validateInput(inputs[i]); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
	}
	return inputs, nil
}

// readDocument reads a JSON or YAML file and returns it as JSON.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", path, err)
		}
		return converted, nil
	default:
		return data, nil
	}
}

// validateInput reports missing required attributes by flag-friendly name.
func validateInput(input types.UserInput) error {
	err := input.Validate()
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("missing required attributes: %s", strings.Join(missing, ", "))
}

// recommendAll evaluates inputs concurrently; results keep input order.
func recommendAll(ctx context.Context, inputs []types.UserInput, infer func(types.UserInput) []types.Recommendation) ([][]types.Recommendation, error) {
	results := make([][]types.Recommendation, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = infer(input)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printBatch(out io.Writer, inputs []types.UserInput, results [][]types.Recommendation) error {
	if recommendJSON {
		responses := make([]types.RecommendationResponse, len(results))
		for i, recs := range results {
			responses[i] = types.RecommendationResponse{Recommendations: recs}
		}
		return writeJSON(out, responses)
	}

	printer := observability.NewPrinter(out)
	for i, recs := range results {
		_, _ = fmt.Fprintf(out, "Profile %d of %d\n", i+1, len(results))
		if recommendVerbose {
			printer.PrintUserInput(inputs[i])
		}
		printer.PrintRecommendations(recs)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
