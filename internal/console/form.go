package console

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

type FormMode string

const (
	ModeAdd  FormMode = "add"
	ModeEdit FormMode = "edit"
)

// Form is the dual-mode create/replace component for one entity type. Add
// POSTs to the collection path; edit PUTs to the record path, pre-filled
// from a freshly fetched record whose snapshot travels with the form.
type Form struct {
	client *Client
	desc   Descriptor
	logger *slog.Logger
}

func NewForm(client *Client, desc Descriptor, logger *slog.Logger) *Form {
	return &Form{client: client, desc: desc, logger: logger}
}

// SubmitOutcome reports what a submission did. KeepOpen means the form must
// be re-rendered with the entered values (client-side validation failed);
// Performed reports whether a network call was issued.
type SubmitOutcome struct {
	Notice    Notice
	KeepOpen  bool
	Performed bool
}

// BuildPayload assembles the typed payload strictly from the descriptor's
// named fields. Unexpected or extra submitted values are never sent.
func (f *Form) BuildPayload(values url.Values) map[string]interface{} {
	payload := make(map[string]interface{}, len(f.desc.FormFields))
	for _, field := range f.desc.FormFields {
		payload[field.Name] = field.Convert(values.Get(field.Name))
	}
	return payload
}

// Submit validates, short-circuits unchanged edits, and otherwise issues
// exactly one POST or PUT.
func (f *Form) Submit(ctx context.Context, mode FormMode, id string, values url.Values, originalJSON string) SubmitOutcome {
	payload := f.BuildPayload(values)

	if f.desc.Validate != nil {
		if err := f.desc.Validate(payload); err != nil {
			return SubmitOutcome{
				Notice:   Notice{Message: err.Error(), Kind: NoticeError},
				KeepOpen: true,
			}
		}
	}

	if mode == ModeEdit && unchanged(payload, originalJSON) {
		return SubmitOutcome{
			Notice: Notice{Message: "Same information, nothing to update", Kind: NoticeInfo},
		}
	}

	path := f.desc.ListPath
	method := http.MethodPost
	if mode == ModeEdit {
		path = f.desc.RecordPath(id)
		method = http.MethodPut
	}

	res, err := f.client.Send(ctx, path, method, payload)
	if err != nil {
		f.logger.Error("form submit failed", "entity", f.desc.Name, "mode", mode, "error", err)
		return SubmitOutcome{
			Notice:    Notice{Message: "could not reach workforce API", Kind: NoticeError},
			Performed: true,
		}
	}

	return SubmitOutcome{Notice: resultNotice(res), Performed: true}
}

// unchanged compares the new payload field-by-field, stringified, against
// the originally fetched record.
func unchanged(payload map[string]interface{}, originalJSON string) bool {
	if originalJSON == "" {
		return false
	}
	var original Record
	if err := json.Unmarshal([]byte(originalJSON), &original); err != nil {
		return false
	}
	for key, value := range payload {
		if stringify(value) != original.Str(key) {
			return false
		}
	}
	return true
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// resultNotice branches the notification kind purely on the presence of an
// error field in the response payload.
func resultNotice(res Result) Notice {
	if res.IsError() {
		return Notice{Message: res.ErrorText(), Kind: NoticeError}
	}
	message := res.Message()
	if message == "" {
		message = "done"
	}
	kind := NoticeSuccess
	if res.Message() != "" && looksInformational(res.Message()) {
		kind = NoticeInfo
	}
	return Notice{Message: message, Kind: kind}
}

// looksInformational catches the backend's own no-op notice so a PUT that
// raced to an unchanged state still reads as informational, not success.
func looksInformational(message string) bool {
	return message == "Same information, nothing to update"
}
