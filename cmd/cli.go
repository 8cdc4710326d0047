package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"

	"nutrition-calculator/internal/calculator"
	"nutrition-calculator/internal/nutrition"
	"nutrition-calculator/internal/output"
)

const name = "nutricalc"

func newApp() *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: "Estimate BMR, TDEE, calorie and protein targets",
		Commands: []*cli.Command{
			serveCmd(),
			calcCmd(),
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return Run(ctx)
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API (configured through the environment)",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return Run(ctx)
		},
	}
}

// calcCmd takes every value as text so that it parses exactly like the
// query parameters of the HTTP API.
func calcCmd() *cli.Command {
	return &cli.Command{
		Name:  "calc",
		Usage: "Run a single calculation and print the response document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: calculator.ParamAge, Usage: "age in years"},
			&cli.StringFlag{Name: calculator.ParamWeight, Usage: "weight in kilograms"},
			&cli.StringFlag{Name: calculator.ParamHeight, Usage: "height in centimeters"},
			&cli.StringFlag{Name: calculator.ParamSex, Value: calculator.DefaultSex, Usage: "male (m) or female"},
			&cli.StringFlag{
				Name:  "activity-level",
				Value: calculator.DefaultActivityLevel,
				Usage: fmt.Sprintf("activity level (supported values: %v)", nutrition.ActivityLevels()),
			},
			&cli.StringFlag{
				Name:  calculator.ParamGoal,
				Value: calculator.DefaultGoal,
				Usage: fmt.Sprintf("goal (supported values: %v)", nutrition.Goals()),
			},
			&cli.StringFlag{
				Name:  "format",
				Value: string(output.FormatJSON),
				Usage: fmt.Sprintf("output format (supported values: %v)", output.Formats()),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			format := output.Format(cmd.String("format"))
			if !format.IsValid() {
				return fmt.Errorf("unknown output format: %q", format)
			}

			calc, err := calculator.New(validator.New())
			if err != nil {
				return err
			}

			q := url.Values{}
			for param, flag := range map[string]string{
				calculator.ParamAge:           calculator.ParamAge,
				calculator.ParamWeight:        calculator.ParamWeight,
				calculator.ParamHeight:        calculator.ParamHeight,
				calculator.ParamSex:           calculator.ParamSex,
				calculator.ParamActivityLevel: "activity-level",
				calculator.ParamGoal:          calculator.ParamGoal,
			} {
				if cmd.IsSet(flag) || cmd.String(flag) != "" {
					q.Set(param, cmd.String(flag))
				}
			}

			body, _, violation := calc.Respond(q)
			if err := output.Write(cmd.Root().Writer, format, body); err != nil {
				return err
			}
			if violation != nil {
				return fmt.Errorf("calculation rejected: %w", violation)
			}
			return nil
		},
	}
}
