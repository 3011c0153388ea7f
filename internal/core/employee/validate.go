package employee

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field はフォーム項目名です。
type Field string

const (
	FieldName        Field = "name"
	FieldDesignation Field = "designation"
	FieldLocation    Field = "location"
	FieldSalary      Field = "salary"
)

// Reason は検証エラーの種別です。
type Reason string

const (
	ReasonRequired      Reason = "Required"
	ReasonTooShort      Reason = "TooShort"
	ReasonInvalidAmount Reason = "InvalidAmount"
)

const minNameLength = 2

var fieldLabels = map[Field]string{
	FieldName:        "Name",
	FieldDesignation: "Designation",
	FieldLocation:    "Location",
	FieldSalary:      "Salary",
}

// ValidationErrors は項目ごとの検証エラーです。空であれば入力は妥当です。
type ValidationErrors map[Field]Reason

// Error は項目名順に連結したメッセージを返します。
func (v ValidationErrors) Error() string {
	fields := v.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, string(f)+": "+string(v[f]))
	}
	return "employee: validation failed: " + strings.Join(parts, ", ")
}

// Unwrap により errors.Is(err, ErrValidation) が成立します。
func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Fields はエラーのある項目を名前順で返します。
func (v ValidationErrors) Fields() []Field {
	fields := make([]Field, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Message はフォームの項目横に表示する文言を返します。
func (v ValidationErrors) Message(f Field) string {
	reason, ok := v[f]
	if !ok {
		return ""
	}
	return Message(f, reason)
}

// Message は項目と種別から表示用の文言を組み立てます。
func Message(f Field, r Reason) string {
	label := fieldLabels[f]
	if label == "" {
		label = string(f)
	}
	switch r {
	case ReasonRequired:
		return label + " is required"
	case ReasonTooShort:
		return label + " must be at least 2 characters"
	case ReasonInvalidAmount:
		return "Please enter a valid salary amount"
	default:
		return label + " is invalid"
	}
}

// Validate はフォーム入力を項目ごとに独立して検証します。
// 空白のみの判定にだけトリムを使い、入力値自体は変更しません。
func Validate(in Input) ValidationErrors {
	errs := ValidationErrors{}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs[FieldName] = ReasonRequired
	case utf8.RuneCountInString(name) < minNameLength:
		errs[FieldName] = ReasonTooShort
	}

	if strings.TrimSpace(in.Designation) == "" {
		errs[FieldDesignation] = ReasonRequired
	}

	if strings.TrimSpace(in.Location) == "" {
		errs[FieldLocation] = ReasonRequired
	}

	salary := strings.TrimSpace(in.Salary)
	if salary == "" {
		errs[FieldSalary] = ReasonRequired
	} else if !isPositiveAmount(salary) {
		errs[FieldSalary] = ReasonInvalidAmount
	}

	return errs
}

func isPositiveAmount(raw string) bool {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v > 0
}
