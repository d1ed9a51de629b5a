package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	oai "github.com/openai/openai-go/v3"

	"github.com/joseph-ayodele/bridgeplans/internal/common"
	"github.com/joseph-ayodele/bridgeplans/internal/llm"
)

var _ llm.FieldExtractor = (*Client)(nil)

// ExtractFields implements llm.FieldExtractor with one chat/completions call
// constrained by the bridge-work JSON schema. Transport and API errors wrap
// common.ErrModelInvocation; an unusable answer wraps common.ErrSchemaParse.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (llm.BridgeWorkFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	log := common.LoggerFrom(ctx, c.log)

	log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
	)
	if strings.TrimSpace(req.Text) == "" {
		log.Warn("llm.extract.empty_text", "req_id", rid)
	}

	params := oai.ChatCompletionNewParams{
		Model: oai.ChatModel(c.cfg.Model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(llm.BuildSystemPrompt()),
			oai.UserMessage(llm.BuildUserPrompt(req)),
		},
		Temperature: oai.Float(c.cfg.Temperature),
		ResponseFormat: oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &oai.ResponseFormatJSONSchemaParam{
				JSONSchema: oai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        llm.SchemaName,
					Description: oai.String("Job numbers, proposed work and date from a bridge plan title sheet"),
					Schema:      llm.BuildBridgeWorkJSONSchema(),
					Strict:      oai.Bool(true),
				},
			},
		},
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		err = mapOpenAIError(err)
		log.Error("llm.extract.api_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.BridgeWorkFields{}, nil, common.ModelError(err)
	}
	if len(resp.Choices) == 0 {
		log.Error("llm.extract.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.BridgeWorkFields{}, nil, common.ModelError(errors.New("no choices in openai response"))
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		log.Error("llm.extract.refusal",
			"req_id", rid, "refusal", msg.Refusal,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.BridgeWorkFields{}, nil, common.ModelError(fmt.Errorf("model refused: %s", msg.Refusal))
	}

	out, raw, err := llm.ParseBridgeWork(msg.Content)
	if err != nil {
		log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", msg.Content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.BridgeWorkFields{}, raw, err
	}

	log.Info("llm.extract.ok",
		"req_id", rid,
		"job_number", out.JobNumber,
		"work_items", len(out.ProposedWork),
		"date", out.Date,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, raw, nil
}

func mapOpenAIError(err error) error {
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("openai error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("openai error (status %d)", apiErr.StatusCode)
	}
	return err
}
