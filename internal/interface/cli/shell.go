// Package cli 终端交互界面
//
// Shell持有唯一的列表视图状态(搜索词、分类、排序、页码),
// 每条命令执行后重新派生并渲染当前页。
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/listing"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// Prompter 读取一行输入(由liner.State实现)
type Prompter interface {
	Prompt(prompt string) (string, error)
	PromptWithSuggestion(prompt, text string, pos int) (string, error)
}

// UseCases Shell依赖的用例
type UseCases struct {
	List    *appbook.ListBooksUseCase
	Get     *appbook.GetBookUseCase
	Add     *appbook.AddBookUseCase
	Edit    *appbook.EditBookUseCase
	Delete  *appbook.DeleteBookUseCase
	Refresh *appbook.RefreshCatalogUseCase
	Status  *appbook.CatalogStatusUseCase
}

// Shell 命令解释器
type Shell struct {
	uc    UseCases
	view  *listing.View
	in    Prompter
	out   io.Writer
	pages int // 最近一次渲染时的总页数
}

// NewShell 创建Shell
func NewShell(uc UseCases, pageSize int, in Prompter, out io.Writer) *Shell {
	return &Shell{
		uc:   uc,
		view: listing.NewView(pageSize),
		in:   in,
		out:  out,
	}
}

// Commands 全部命令(补全用)
var Commands = []string{
	"list", "search", "category", "sort", "page", "next", "prev",
	"refresh", "show", "add", "edit", "delete", "categories",
	"status", "help", "quit",
}

// Exec 执行一行命令,返回true表示退出
// 命令失败时输出错误信息,不中断会话
func (s *Shell) Exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	cmd = strings.ToLower(cmd)

	var err error
	switch cmd {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.printHelp()
	case "list", "ls":
		err = s.render(ctx)
	case "search":
		s.view.SetTerm(rest)
		err = s.render(ctx)
	case "category":
		s.view.SetCategory(strings.TrimSpace(rest))
		err = s.render(ctx)
	case "sort":
		err = s.cmdSort(ctx, strings.Fields(rest))
	case "page":
		err = s.cmdPage(ctx, strings.TrimSpace(rest))
	case "next":
		if !s.view.Next(s.pages) {
			fmt.Fprintln(s.out, "Already on the last page.")
			return false
		}
		err = s.render(ctx)
	case "prev":
		if !s.view.Prev() {
			fmt.Fprintln(s.out, "Already on the first page.")
			return false
		}
		err = s.render(ctx)
	case "refresh":
		err = s.cmdRefresh(ctx)
	case "show":
		err = s.cmdShow(ctx, strings.TrimSpace(rest))
	case "add":
		err = s.cmdAdd(ctx)
	case "edit":
		err = s.cmdEdit(ctx, strings.TrimSpace(rest))
	case "delete", "del":
		err = s.cmdDelete(ctx, strings.TrimSpace(rest))
	case "categories":
		s.printCategories()
	case "status":
		err = s.cmdStatus(ctx)
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintln(s.out, apperrors.GetAppError(err).Message)
	}
	return false
}

// Complete 命令补全
func (s *Shell) Complete(line string) []string {
	var out []string
	lower := strings.ToLower(line)
	for _, c := range Commands {
		if strings.HasPrefix(c, lower) {
			out = append(out, c)
		}
	}
	return out
}

// render 派生并输出当前页
func (s *Shell) render(ctx context.Context) error {
	sort := s.view.Sort()
	resp, err := s.uc.List.Execute(ctx, appbook.ListBooksRequest{
		Term:     s.view.Term(),
		Category: s.view.Category(),
		SortBy:   string(sort.Field),
		Order:    string(sort.Direction),
		Page:     s.view.Page(),
	})
	if err != nil {
		return err
	}
	s.pages = resp.TotalPages

	fmt.Fprintf(s.out, "Search: %q  Category: %s  Sort: %s %s\n",
		s.view.Term(), s.view.Category(), sort.Field, sort.Direction)

	if resp.Message != "" {
		fmt.Fprintln(s.out, resp.Message)
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tYEAR\tCATEGORY\tISBN")
	for _, item := range resp.List {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Title, item.Author, formatYear(item.PublishedYear), item.Genre, item.ISBN)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// 只有一页时不显示翻页控件
	if resp.ShowControls {
		fmt.Fprintf(s.out, "Page %d of %d (%d books)", resp.Page+1, resp.TotalPages, resp.Matched)
		if resp.HasPrev {
			fmt.Fprint(s.out, "  [prev]")
		}
		if resp.HasNext {
			fmt.Fprint(s.out, "  [next]")
		}
		fmt.Fprintln(s.out)
	}
	return nil
}

func (s *Shell) cmdSort(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(s.out, "Usage: sort <title|author|publishedYear|genre|isbn> [asc|desc]")
		return nil
	}
	field, err := listing.ParseSortField(args[0])
	if err != nil {
		return err
	}
	dir := listing.Ascending
	if len(args) == 2 {
		if dir, err = listing.ParseDirection(args[1]); err != nil {
			return err
		}
	}
	s.view.SetSort(listing.SortSpec{Field: field, Direction: dir})
	return s.render(ctx)
}

// cmdPage 页码从1开始输入
func (s *Shell) cmdPage(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Fprintln(s.out, "Usage: page <n> (n >= 1)")
		return nil
	}
	s.view.SetPage(n - 1)
	return s.render(ctx)
}

func (s *Shell) cmdRefresh(ctx context.Context) error {
	st, err := s.uc.Refresh.Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Reloaded %d books (revision %d)\n", st.Records, st.CachedRevision)
	return s.render(ctx)
}

func (s *Shell) cmdShow(ctx context.Context, id string) error {
	b, err := s.uc.Get.Execute(ctx, id)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", b.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", b.Title)
	fmt.Fprintf(tw, "Author:\t%s\n", b.Author)
	fmt.Fprintf(tw, "ISBN:\t%s\n", b.ISBN)
	fmt.Fprintf(tw, "Published:\t%s\n", formatYear(b.PublishedYear))
	fmt.Fprintf(tw, "Category:\t%s\n", b.Genre)
	fmt.Fprintf(tw, "Image:\t%s\n", b.ImageURL)
	fmt.Fprintf(tw, "Description:\t%s\n", b.Description)
	return tw.Flush()
}

func (s *Shell) cmdAdd(ctx context.Context) error {
	form, err := s.readForm(appbook.BookForm{})
	if err != nil {
		return err
	}
	created, err := s.uc.Add.Execute(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added %q (%s)\n", created.Title, created.ID)
	return s.render(ctx)
}

func (s *Shell) cmdEdit(ctx context.Context, id string) error {
	current, err := s.uc.Get.Execute(ctx, id)
	if err != nil {
		return err
	}

	form, err := s.readForm(appbook.BookForm{
		Title:         current.Title,
		Author:        current.Author,
		ISBN:          current.ISBN,
		PublishedYear: formatYear(current.PublishedYear),
		Genre:         current.Genre,
		ImageURL:      current.ImageURL,
		Description:   current.Description,
	})
	if err != nil {
		return err
	}

	updated, err := s.uc.Edit.Execute(ctx, appbook.EditBookRequest{ID: current.ID, BookForm: form})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Updated %q\n", updated.Title)
	return s.render(ctx)
}

func (s *Shell) cmdDelete(ctx context.Context, id string) error {
	current, err := s.uc.Get.Execute(ctx, id)
	if err != nil {
		return err
	}

	answer, err := s.in.Prompt(fmt.Sprintf("Delete %q? (yes/no): ", current.Title))
	if err != nil {
		return err
	}
	if a := strings.ToLower(strings.TrimSpace(answer)); a != "yes" && a != "y" {
		fmt.Fprintln(s.out, "Cancelled.")
		return nil
	}

	if err := s.uc.Delete.Execute(ctx, current.ID); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted %q\n", current.Title)

	// 删除最后一页的最后一本后回到有效页
	if err := s.render(ctx); err != nil {
		return err
	}
	if s.view.Page() >= s.pages && s.pages > 0 {
		s.view.Clamp(s.pages)
		return s.render(ctx)
	}
	return nil
}

func (s *Shell) cmdStatus(ctx context.Context) error {
	st, err := s.uc.Status.Execute(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Loaded:\t%t\n", st.Loaded)
	fmt.Fprintf(tw, "Stale:\t%t\n", st.Stale)
	fmt.Fprintf(tw, "Records:\t%d\n", st.Records)
	fmt.Fprintf(tw, "Revision:\t%d (current %d)\n", st.CachedRevision, st.CurrentRevision)
	fmt.Fprintf(tw, "Fetches:\t%d\n", st.Generation)
	if st.FetchedAt != "" {
		fmt.Fprintf(tw, "Fetched at:\t%s\n", st.FetchedAt)
	}
	if st.LastError != "" {
		fmt.Fprintf(tw, "Last error:\t%s\n", st.LastError)
	}
	return tw.Flush()
}

// readForm 逐项读取表单,prefill为编辑时的当前值
func (s *Shell) readForm(prefill appbook.BookForm) (appbook.BookForm, error) {
	fields := []struct {
		label string
		dst   *string
	}{
		{"Title", &prefill.Title},
		{"Author", &prefill.Author},
		{"ISBN", &prefill.ISBN},
		{"Published year", &prefill.PublishedYear},
		{"Category (" + strings.Join(book.Categories, ", ") + ")", &prefill.Genre},
		{"Image URL", &prefill.ImageURL},
		{"Description", &prefill.Description},
	}
	for _, f := range fields {
		v, err := s.in.PromptWithSuggestion(f.label+": ", *f.dst, -1)
		if err != nil {
			return appbook.BookForm{}, err
		}
		*f.dst = v
	}
	return prefill, nil
}

func (s *Shell) printCategories() {
	fmt.Fprintln(s.out, listing.AllCategories)
	for _, c := range book.Categories {
		fmt.Fprintln(s.out, c)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  list                          Show the current page
  search <term>                 Filter by title, author or ISBN (empty clears)
  category <name|All>           Filter by category
  sort <field> [asc|desc]       Sort by title, author, publishedYear, genre or isbn
  page <n>                      Jump to page n
  next / prev                   Move between pages
  refresh                       Reload all books from the store
  show <id>                     Show book details
  add                           Add a book
  edit <id>                     Edit a book
  delete <id>                   Delete a book
  categories                    List categories
  status                        Show cache status
  help                          Show this help
  quit                          Exit`)
}

func formatYear(year *int) string {
	if year == nil {
		return ""
	}
	return strconv.Itoa(*year)
}
