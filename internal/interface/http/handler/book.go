package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/listing"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase      *appbook.ListBooksUseCase
	getBookUseCase        *appbook.GetBookUseCase
	addBookUseCase        *appbook.AddBookUseCase
	editBookUseCase       *appbook.EditBookUseCase
	deleteBookUseCase     *appbook.DeleteBookUseCase
	refreshCatalogUseCase *appbook.RefreshCatalogUseCase
	catalogStatusUseCase  *appbook.CatalogStatusUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	addBookUseCase *appbook.AddBookUseCase,
	editBookUseCase *appbook.EditBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	refreshCatalogUseCase *appbook.RefreshCatalogUseCase,
	catalogStatusUseCase *appbook.CatalogStatusUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:      listBooksUseCase,
		getBookUseCase:        getBookUseCase,
		addBookUseCase:        addBookUseCase,
		editBookUseCase:       editBookUseCase,
		deleteBookUseCase:     deleteBookUseCase,
		refreshCatalogUseCase: refreshCatalogUseCase,
		catalogStatusUseCase:  catalogStatusUseCase,
	}
}

// ListBooks 图书列表(搜索、分类、排序、分页)
// @Summary      图书列表
// @Description  在全量缓存上依次执行过滤、排序、分页,每页8条
// @Tags         图书
// @Produce      json
// @Param        q        query string false "搜索词(书名、作者、ISBN,不区分大小写)"
// @Param        category query string false "分类,All表示全部"
// @Param        sort     query string false "排序字段" Enums(title, author, publishedYear, genre, isbn)
// @Param        order    query string false "排序方向" Enums(asc, desc)
// @Param        page     query int    false "页码(从0开始)"
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Failure      default {object} response.Response "40900参数错误 / 50001存储错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithErr(err))
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), q.ToRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      default {object} response.Response "40402图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	result, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddBook 新增图书
// @Summary      新增图书
// @Description  书名、作者、ISBN、简介必填;未选分类时默认Fiction,未填封面时使用占位图
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      default {object} response.Response "40900必填字段缺失 / 40901请求体格式错误"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithErr(err))
		return
	}

	result, err := h.addBookUseCase.Execute(c.Request.Context(), req.ToForm())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// EditBook 编辑图书(整体替换除ID外的全部字段)
// @Summary      编辑图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path string          true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      default {object} response.Response "40402图书不存在 / 40900必填字段缺失"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) EditBook(c *gin.Context) {
	h.edit(c, c.Param("id"))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=map[string]string}
// @Failure      default {object} response.Response "40402图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	h.delete(c, c.Param("id"))
}

// RefreshCatalog 手动刷新列表缓存
// @Summary      刷新列表
// @Description  递增数据版本号并立即重新拉取全量数据
// @Tags         列表缓存
// @Produce      json
// @Success      200 {object} response.Response{data=appbook.CatalogStatusResponse}
// @Failure      default {object} response.Response "50001存储错误 / 50002版本号存储错误"
// @Router       /api/v1/books/refresh [post]
func (h *BookHandler) RefreshCatalog(c *gin.Context) {
	result, err := h.refreshCatalogUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CatalogStatus 列表缓存状态
// @Summary      缓存状态
// @Tags         列表缓存
// @Produce      json
// @Success      200 {object} response.Response{data=appbook.CatalogStatusResponse}
// @Router       /api/v1/catalog/status [get]
func (h *BookHandler) CatalogStatus(c *gin.Context) {
	result, err := h.catalogStatusUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Categories 分类列表(分类选择器使用)
// @Summary      分类列表
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.CategoriesResponse}
// @Router       /api/v1/categories [get]
func (h *BookHandler) Categories(c *gin.Context) {
	response.Success(c, &dto.CategoriesResponse{
		All:        listing.AllCategories,
		Categories: book.Categories,
		Default:    book.DefaultGenre,
	})
}

// edit 绑定请求体并执行编辑(REST与导航路由共用)
func (h *BookHandler) edit(c *gin.Context, id string) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithErr(err))
		return
	}

	result, err := h.editBookUseCase.Execute(c.Request.Context(), appbook.EditBookRequest{
		ID:       id,
		BookForm: req.ToForm(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// delete 执行删除(REST与导航路由共用)
func (h *BookHandler) delete(c *gin.Context, id string) {
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}
