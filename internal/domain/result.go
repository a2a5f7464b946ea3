package domain

// ValidationResult итог проверки запроса на бронирование.
// Errors блокируют бронирование; Warnings и Suggestions — только советы.
// Создается заново на каждый вызов валидации и после возврата не изменяется.
type ValidationResult struct {
	IsValid     bool
	Errors      []string
	Warnings    []string
	Suggestions []string
}

// NewValidationResult создает пустой валидный результат
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid:     true,
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}
}

// AddError добавляет блокирующее нарушение; результат становится невалидным
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// AddWarning добавляет неблокирующее предупреждение
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddSuggestion добавляет информационную подсказку
func (r *ValidationResult) AddSuggestion(msg string) {
	r.Suggestions = append(r.Suggestions, msg)
}
