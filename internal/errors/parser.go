package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a database error into a code and a safe message.
// Internal details are logged elsewhere, never exposed to the caller.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := strings.ToLower(err.Error())

	// 1. GORM record-not-found
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. Postgres constraint violations

	// 2-1. Unique constraint (23505)
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint (23503)
	if strings.Contains(errStr, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}

	// 2-3. Not-null constraint (23502)
	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 2-4. Check constraint (23514)
	if strings.Contains(errStr, "check constraint") {
		if strings.Contains(errStr, "rating") {
			return ErrorInfo{
				Code:    ReviewInvalidRating,
				Message: "Rating must be between 1 and 5",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Invalid input value",
		}
	}

	// 3. Network errors from the VK API or S3
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Failed to reach an external service. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong. Please try again later",
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	// One review per (app, user)
	if strings.Contains(errStr, "reviews") &&
		(strings.Contains(errStr, "user_id") || strings.Contains(errStr, "app_id") || strings.Contains(errStr, "idx_reviews_app_user")) {
		return ErrorInfo{
			Code:    ReviewAlreadyExists,
			Message: "You have already reviewed this app",
		}
	}

	// A VK user can exist only once
	if strings.Contains(errStr, "vk_id") || strings.Contains(errStr, "idx_users_vk_id") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This VK account is already registered",
		}
	}

	if strings.Contains(errStr, "email") || strings.Contains(errStr, "idx_users_email") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This email is already in use",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	if strings.Contains(errStr, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Cannot delete: other records still reference this one",
		}
	}

	if strings.Contains(errStr, "app_id") {
		return ErrorInfo{
			Code:    AppNotFound,
			Message: "App not found",
		}
	}
	if strings.Contains(errStr, "user_id") {
		return ErrorInfo{
			Code:    UserNotFound,
			Message: "User not found",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Referenced record not found",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "app") {
		return "App not found"
	}
	if strings.Contains(contextLower, "review") {
		return "Review not found"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "profile") {
		return "User not found"
	}

	return "Requested record not found"
}
