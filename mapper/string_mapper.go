package mapper

import "reflect"

// StringMapper renders any source into a string destination through the
// formatter chain.
type StringMapper struct{}

func (StringMapper) IsMatch(ctx *ResolutionContext) bool {
	return ctx.DestinationType() == stringType
}

func (StringMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	text, err := runner.FormatValue(ctx)
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(text), nil
}
