package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/schema"
	"github.com/Mostlime12195/Libre-Assistant-sub000/tool"
)

type timeArgs struct {
	Timezone string `json:"timezone" desc:"IANA timezone name, defaults to UTC"`
}

type calcArgs struct {
	Operation string  `json:"operation" desc:"Arithmetic operation" required:"true" enum:"add,subtract,multiply,divide"`
	A         float64 `json:"a" desc:"First operand" required:"true"`
	B         float64 `json:"b" desc:"Second operand" required:"true"`
}

// builtinTools registers the demo tools every session starts with.
func builtinTools(registry *tool.Registry) {
	registry.Add(
		tool.Func("current_time", "Get the current date and time",
			func(ctx context.Context, args timeArgs) (string, error) {
				loc := time.UTC
				if args.Timezone != "" {
					parsed, err := time.LoadLocation(args.Timezone)
					if err != nil {
						return "", fmt.Errorf("unknown timezone %q", args.Timezone)
					}
					loc = parsed
				}
				return time.Now().In(loc).Format(time.RFC1123), nil
			}),
		tool.Func("calculate", "Perform basic arithmetic",
			func(ctx context.Context, args calcArgs) (string, error) {
				var result float64
				switch args.Operation {
				case "add":
					result = args.A + args.B
				case "subtract":
					result = args.A - args.B
				case "multiply":
					result = args.A * args.B
				case "divide":
					if args.B == 0 {
						return "", fmt.Errorf("division by zero")
					}
					result = args.A / args.B
				default:
					return "", fmt.Errorf("unknown operation %q", args.Operation)
				}
				return fmt.Sprintf("%g", result), nil
			}),
		tool.WithHandler("roll_dice", "Roll dice and report each result",
			schema.Object().
				Field("sides", schema.Integer().Desc("Number of sides per die").Min(2).Max(1000).Required()).
				Field("count", schema.Integer().Desc("Number of dice, defaults to 1").Min(1).Max(100)).
				Strict().
				MustBuild(),
			rollDice),
	)
}

func rollDice(ctx context.Context, call ai.ToolCall) (string, error) {
	var args struct {
		Sides int `json:"sides"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return "", err
	}
	if args.Sides < 2 {
		return "", fmt.Errorf("dice need at least 2 sides")
	}
	if args.Count < 1 {
		args.Count = 1
	}
	rolls := make([]string, args.Count)
	for i := range rolls {
		rolls[i] = fmt.Sprintf("%d", rand.Intn(args.Sides)+1)
	}
	return fmt.Sprintf("rolled: %v", rolls), nil
}
