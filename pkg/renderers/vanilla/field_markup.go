package vanilla

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynaform/pkg/render"
	"github.com/goliatone/go-dynaform/pkg/schema"
)

func controlID(fieldID string) string {
	return "df-" + fieldID
}

func buildFieldMarkup(field schema.FieldDescriptor, options render.Options) string {
	value := options.Values[field.ID]
	errMsg := options.Errors[field.ID]

	var builder strings.Builder
	builder.Grow(512)

	builder.WriteString(`<div class="df-field" data-field="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`">`)

	writeLabel(&builder, field)

	switch field.Type {
	case schema.FieldTypeTextarea:
		writeTextarea(&builder, field, value)
	case schema.FieldTypeSelect:
		writeSelect(&builder, field, value)
	case schema.FieldTypeRadio:
		writeRadioGroup(&builder, field, value)
	default:
		writeInput(&builder, field, value)
	}

	if errMsg != "" {
		builder.WriteString(`<span class="df-error" role="alert">`)
		builder.WriteString(html.EscapeString(errMsg))
		builder.WriteString(`</span>`)
	}

	builder.WriteString(`</div>`)
	return builder.String()
}

func writeLabel(builder *strings.Builder, field schema.FieldDescriptor) {
	builder.WriteString(`<label class="df-label"`)
	if field.Type != schema.FieldTypeRadio {
		builder.WriteString(` for="`)
		builder.WriteString(html.EscapeString(controlID(field.ID)))
		builder.WriteString(`"`)
	}
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(field.Label))
	if field.Required {
		builder.WriteString(` <span class="df-required" aria-hidden="true">*</span>`)
	}
	builder.WriteString(`</label>`)
}

func writeInput(builder *strings.Builder, field schema.FieldDescriptor, value string) {
	inputType := "text"
	if field.Type == schema.FieldTypeEmail {
		inputType = "email"
	}

	builder.WriteString(`<input class="df-control" type="`)
	builder.WriteString(inputType)
	builder.WriteString(`" id="`)
	builder.WriteString(html.EscapeString(controlID(field.ID)))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`"`)
	if field.Placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(field.Placeholder))
		builder.WriteString(`"`)
	}
	if value != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(value))
		builder.WriteString(`"`)
	}
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
}

func writeTextarea(builder *strings.Builder, field schema.FieldDescriptor, value string) {
	builder.WriteString(`<textarea class="df-control" id="`)
	builder.WriteString(html.EscapeString(controlID(field.ID)))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" rows="4"`)
	if field.Placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(field.Placeholder))
		builder.WriteString(`"`)
	}
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`</textarea>`)
}

func writeSelect(builder *strings.Builder, field schema.FieldDescriptor, value string) {
	builder.WriteString(`<select class="df-control" id="`)
	builder.WriteString(html.EscapeString(controlID(field.ID)))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`"`)
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)

	// Empty sentinel keeps the control unanswered until the user picks.
	builder.WriteString(`<option value=""`)
	if value == "" {
		builder.WriteString(` selected`)
	}
	builder.WriteString(`>Choose...</option>`)

	for _, option := range field.Options {
		builder.WriteString(`<option value="`)
		builder.WriteString(html.EscapeString(option.Value))
		builder.WriteString(`"`)
		if option.Value == value && value != "" {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString(`</option>`)
	}
	builder.WriteString(`</select>`)
}

func writeRadioGroup(builder *strings.Builder, field schema.FieldDescriptor, value string) {
	builder.WriteString(`<div class="df-choices" role="radiogroup">`)
	for i, option := range field.Options {
		id := controlID(field.ID) + "-" + strconv.Itoa(i)
		builder.WriteString(`<label for="`)
		builder.WriteString(html.EscapeString(id))
		builder.WriteString(`"><input type="radio" id="`)
		builder.WriteString(html.EscapeString(id))
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(field.ID))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(option.Value))
		builder.WriteString(`"`)
		if option.Value == value && value != "" {
			builder.WriteString(` checked`)
		}
		if field.Required {
			builder.WriteString(` required`)
		}
		builder.WriteString(`> `)
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString(`</label>`)
	}
	builder.WriteString(`</div>`)
}
