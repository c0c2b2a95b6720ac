package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrMissingID 未提供图书ID(详情/编辑/删除页缺少id参数)
	ErrMissingID = apperrors.ErrMissingID

	// ErrInvalidFields 必填字段缺失
	ErrInvalidFields = apperrors.New(apperrors.ErrCodeInvalidParams, "Please fill in all required fields")

	// ErrInvalidYear 出版年份不是数字
	ErrInvalidYear = apperrors.New(apperrors.ErrCodeInvalidParams, "Published year must be a number")
)
