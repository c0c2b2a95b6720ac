package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// 导航页面名称(与列表项links中的路径一致)
const (
	ViewDetails = "book-details"
	ViewEdit    = "edit-book"
	ViewDelete  = "delete-book"
)

// NavigationHandler 列表项链接指向的页面
// 路径形如 /book-details?id=<id>,缺少id参数时返回"No book ID provided"
type NavigationHandler struct {
	books *BookHandler
}

// NewNavigationHandler 创建导航处理器
func NewNavigationHandler(books *BookHandler) *NavigationHandler {
	return &NavigationHandler{books: books}
}

// Page 返回指定页面要展示的图书
// @Summary      导航页面
// @Description  详情、编辑、删除确认页面共用,返回页面名称与图书
// @Tags         导航
// @Produce      json
// @Param        id query string true "图书ID"
// @Success      200 {object} response.Response{data=dto.PageView}
// @Failure      default {object} response.Response "40902缺少图书ID / 40402图书不存在"
// @Router       /book-details [get]
// @Router       /edit-book [get]
// @Router       /delete-book [get]
func (h *NavigationHandler) Page(view string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := queryID(c)
		if !ok {
			return
		}

		result, err := h.books.getBookUseCase.Execute(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, &dto.PageView{View: view, Book: result})
	}
}

// SubmitEdit 编辑页面提交
// @Summary      提交编辑
// @Tags         导航
// @Accept       json
// @Produce      json
// @Param        id      query string          true "图书ID"
// @Param        request body  dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Router       /edit-book [put]
func (h *NavigationHandler) SubmitEdit(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	h.books.edit(c, id)
}

// SubmitDelete 删除页面确认
// @Summary      确认删除
// @Tags         导航
// @Produce      json
// @Param        id query string true "图书ID"
// @Success      200 {object} response.Response{data=map[string]string}
// @Router       /delete-book [delete]
func (h *NavigationHandler) SubmitDelete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	h.books.delete(c, id)
}

// queryID 读取id查询参数,缺失时直接写出错误响应
func queryID(c *gin.Context) (string, bool) {
	id, ok := c.GetQuery("id")
	if !ok || id == "" {
		response.Error(c, apperrors.ErrMissingID)
		return "", false
	}
	return id, true
}
