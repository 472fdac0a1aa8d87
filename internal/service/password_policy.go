package service

import (
	"unicode"

	"github.com/storefront-next/internal/config"
)

// 密码规则名称，同时作为 i18n 键后缀
const (
	PasswordRuleMinLength = "min_length"
	PasswordRuleUpper     = "require_upper"
	PasswordRuleLower     = "require_lower"
	PasswordRuleNumber    = "require_number"
	PasswordRuleSpecial   = "require_special"
)

// PasswordRuleError 密码未满足某条策略
// errors.Is(err, ErrWeakPassword) 恒为 true。
type PasswordRuleError struct {
	Rule      string
	MinLength int
}

func (e *PasswordRuleError) Error() string {
	return "weak password: " + e.Rule
}

// Is 归入弱密码错误
func (e *PasswordRuleError) Is(target error) bool {
	return target == ErrWeakPassword
}

// MessageKey 返回对应的 i18n 键
func (e *PasswordRuleError) MessageKey() string {
	return "error.password_" + e.Rule
}

type passwordClasses struct {
	upper, lower, number, special bool
}

func classifyPassword(password string) passwordClasses {
	var classes passwordClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			classes.upper = true
		case unicode.IsLower(r):
			classes.lower = true
		case unicode.IsDigit(r):
			classes.number = true
		default:
			classes.special = true
		}
	}
	return classes
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return &PasswordRuleError{Rule: PasswordRuleMinLength, MinLength: policy.MinLength}
	}

	classes := classifyPassword(password)
	checks := []struct {
		required bool
		present  bool
		rule     string
	}{
		{policy.RequireUpper, classes.upper, PasswordRuleUpper},
		{policy.RequireLower, classes.lower, PasswordRuleLower},
		{policy.RequireNumber, classes.number, PasswordRuleNumber},
		{policy.RequireSpecial, classes.special, PasswordRuleSpecial},
	}
	for _, check := range checks {
		if check.required && !check.present {
			return &PasswordRuleError{Rule: check.rule}
		}
	}
	return nil
}
