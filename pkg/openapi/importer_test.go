package openapi_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-dynaform/pkg/openapi"
	"github.com/goliatone/go-dynaform/pkg/schema"
)

const petstoreDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Signup API", "version": "1.0.0"},
  "paths": {
    "/signups": {
      "post": {
        "operationId": "createSignup",
        "summary": "Create a signup",
        "description": "Registers a new account.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name", "email"],
                "properties": {
                  "name": {
                    "type": "string",
                    "title": "Full name",
                    "example": "Ada Lovelace"
                  },
                  "email": {
                    "type": "string",
                    "format": "email"
                  },
                  "plan": {
                    "type": "string",
                    "enum": ["free", "pro"]
                  },
                  "referral_code": {
                    "type": "string",
                    "pattern": "^[A-Z]{4}[0-9]{2}$"
                  },
                  "bio": {
                    "type": "string",
                    "x-multiline": true
                  },
                  "notes": {
                    "type": "string",
                    "format": "textarea"
                  },
                  "age": {
                    "type": "integer"
                  }
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "created"}
        }
      }
    }
  }
}`

func TestImportBuildsFormFromOperation(t *testing.T) {
	importer := openapi.New(openapi.ImportOptions{})

	form, err := importer.Import(context.Background(), []byte(petstoreDoc), "createSignup")
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if form.Title != "Create a signup" {
		t.Fatalf("unexpected title %q", form.Title)
	}
	if form.Description != "Registers a new account." {
		t.Fatalf("unexpected description %q", form.Description)
	}

	want := []schema.FieldDescriptor{
		{ID: "bio", Type: schema.FieldTypeTextarea, Label: "Bio"},
		{ID: "email", Type: schema.FieldTypeEmail, Label: "Email", Required: true},
		{
			ID:    "name",
			Type:  schema.FieldTypeText,
			Label: "Full name", Required: true,
			Placeholder: "Ada Lovelace",
		},
		{ID: "notes", Type: schema.FieldTypeTextarea, Label: "Notes"},
		{
			ID:    "plan",
			Type:  schema.FieldTypeSelect,
			Label: "Plan",
			Options: []schema.Option{
				{Value: "free", Label: "free"},
				{Value: "pro", Label: "pro"},
			},
		},
		{
			ID:         "referral_code",
			Type:       schema.FieldTypeText,
			Label:      "Referral code",
			Validation: &schema.Validation{Pattern: "^[A-Z]{4}[0-9]{2}$"},
		},
	}
	if diff := cmp.Diff(want, form.Fields, cmpopts.IgnoreUnexported(schema.Validation{})); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestImportSkipsNonStringProperties(t *testing.T) {
	importer := openapi.New(openapi.ImportOptions{})

	form, err := importer.Import(context.Background(), []byte(petstoreDoc), "createSignup")
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if _, ok := form.Field("age"); ok {
		t.Fatal("integer property should not become a field")
	}
}

func TestImportUnknownOperation(t *testing.T) {
	importer := openapi.New(openapi.ImportOptions{})

	if _, err := importer.Import(context.Background(), []byte(petstoreDoc), "deleteSignup"); err == nil {
		t.Fatal("expected error for unknown operation id")
	}
}

func TestImportRejectsEmptyArguments(t *testing.T) {
	importer := openapi.New(openapi.ImportOptions{})

	if _, err := importer.Import(context.Background(), nil, "createSignup"); err == nil {
		t.Fatal("expected error for empty document")
	}
	if _, err := importer.Import(context.Background(), []byte(petstoreDoc), ""); err == nil {
		t.Fatal("expected error for empty operation id")
	}
}

func TestImportedFormRoundTripsThroughParser(t *testing.T) {
	importer := openapi.New(openapi.ImportOptions{})

	form, err := importer.Import(context.Background(), []byte(petstoreDoc), "createSignup")
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	raw, err := schema.Marshal(*form)
	if err != nil {
		t.Fatalf("marshal imported form: %v", err)
	}
	reparsed, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("imported form should satisfy the document rules: %v", err)
	}
	if len(reparsed.Fields) != len(form.Fields) {
		t.Fatalf("field count changed across round trip: %d != %d", len(reparsed.Fields), len(form.Fields))
	}
}
