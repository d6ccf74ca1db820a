package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/chaincall/chain-go/pkg/schema"
)

// Calculator is a tool that performs basic arithmetic operations
type Calculator struct{}

func (t *Calculator) Name() string {
	return "calculator"
}

func (t *Calculator) Description() string {
	return "Perform basic arithmetic operations (add, subtract, multiply, divide)"
}

// CalculatorInput mirrors the tool's argument schema. Options is a nested
// object, which weaker models tend to fill with a plain string.
type CalculatorInput struct {
	Operation string            `json:"operation"`
	Number1   float64           `json:"number1"`
	Number2   float64           `json:"number2"`
	Options   CalculatorOptions `json:"options"`
}

// CalculatorOptions controls result formatting
type CalculatorOptions struct {
	Precision *int `json:"precision,omitempty"`
}

func (t *Calculator) Schema() *openapi3.Schema {
	return schema.Object(map[string]*openapi3.Schema{
		"operation": schema.Enum("The arithmetic operation to perform", "add", "subtract", "multiply", "divide"),
		"number1":   schema.Number("The first number"),
		"number2":   schema.Number("The second number"),
		"options": schema.Object(map[string]*openapi3.Schema{
			"precision": schema.Integer("Decimal places to round the result to"),
		}),
	}, "operation", "number1", "number2", "options")
}

func (t *Calculator) Execute(ctx context.Context, arguments string) (string, error) {
	var params CalculatorInput
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}

	result, err := t.calculate(params.Operation, params.Number1, params.Number2)
	if err != nil {
		return "", err
	}

	if params.Options.Precision != nil {
		factor := math.Pow(10, float64(*params.Options.Precision))
		result = math.Round(result*factor) / factor
	}

	return strconv.FormatFloat(result, 'f', -1, 64), nil
}

func (t *Calculator) calculate(operation string, number1, number2 float64) (float64, error) {
	switch operation {
	case "add":
		return number1 + number2, nil
	case "subtract":
		return number1 - number2, nil
	case "multiply":
		return number1 * number2, nil
	case "divide":
		if number2 == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return number1 / number2, nil
	default:
		return 0, fmt.Errorf("unsupported operation: %s", operation)
	}
}
