package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/microcosm-cc/bluemonday"

	apperrors "record-system/pkg/errors"
)

// 分页参数边界
const (
	defaultLimit = 10
	maxLimit     = 100
)

// ugcPolicy 富文本白名单策略：保留常规排版标签，剥离脚本等活动内容
var ugcPolicy = bluemonday.UGCPolicy()

// sanitizeContent 清洗用户提交的帖子/评论正文
func sanitizeContent(content string) string {
	return ugcPolicy.Sanitize(content)
}

// clampRange 规范分页参数：offset非负，limit须落在[1,maxLimit]，越界取默认值
func clampRange(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return offset, limit
}

// ParseTimestamp 解析过滤用时间参数，优先RFC 3339，其次 YYYY-MM-DD
func ParseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return ts, nil
	}
	return time.Time{}, apperrors.New(apperrors.ErrCodeValidation,
		fmt.Sprintf("invalid timestamp %q, expected RFC 3339 or YYYY-MM-DD", value))
}

// uniqueKeyMessages 唯一索引名到字段级提示的映射
var uniqueKeyMessages = map[string]string{
	"idx_user_username": "Username is already in use.",
	"idx_user_email":    "Email is already in use.",
	"idx_category_name": "Name is already in use.",
}

// translateDuplicateKey 将MySQL 1062唯一键冲突译为字段级业务错误，其余错误原样返回
// 1062消息中带有被违反的索引名，据此定位字段
func translateDuplicateKey(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return err
	}
	for index, message := range uniqueKeyMessages {
		if strings.Contains(mysqlErr.Message, index) {
			return apperrors.Wrap(err, apperrors.ErrCodeUniqueness, message)
		}
	}
	return apperrors.Wrap(err, apperrors.ErrCodeUniqueness, "Duplicate entry violates a unique constraint.")
}

// missingCategoriesMessage 构造缺失分类提示，ID升序列出，如 "Categories not found: [2, 3]"
func missingCategoriesMessage(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("Categories not found: [%s]", strings.Join(parts, ", "))
}
