package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/lore/internal/core/domain"
)

// synopsisLength caps the synopsis taken from an article's first paragraph.
const synopsisLength = 160

var (
	codeBlockPattern    = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern   = regexp.MustCompile("`([^`]+)`")
	imagePattern        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLinkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	headingPattern      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldPattern         = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italicPattern       = regexp.MustCompile(`(^|[\s(])[*_]([^*_\n]+)[*_]`)
	blockquotePattern   = regexp.MustCompile(`(?m)^>\s*`)
	rulePattern         = regexp.MustCompile(`(?m)^[-*_]{3,}[ \t]*$`)
	listMarkerPattern   = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	articleLinkPattern  = regexp.MustCompile(`\[\[([^|\]]+)(?:\|([^\]]*))?\]\]`)
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
)

// LoadPath loads a catalog from a TOML file or a directory of markdown files.
func LoadPath(p string) ([]*domain.ContentRef, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if info.IsDir() {
		return LoadMarkdownDir(p)
	}
	return Load(p)
}

// LoadMarkdownDir builds a catalog from the markdown files under root.
//
// Every file becomes an article whose ID is its slash-separated path
// without extension. Every directory holding markdown files becomes a set
// on the home page listing them. Links to other markdown files become
// article links; other links keep only their text.
func LoadMarkdownDir(root string) ([]*domain.ContentRef, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && isMarkdown(d.Name()) {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading markdown catalog: %w", err)
	}
	sort.Strings(files)

	var (
		sets     []*domain.ContentRef
		articles []*domain.ContentRef
		seenSets = make(map[string]bool)
	)
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("reading markdown catalog: %w", err)
		}

		article := markdownArticle(rel, string(data))
		if dir := path.Dir(rel); dir != "." {
			tag := dirTag(dir)
			article.Tags = []string{tag}
			if !seenSets[dir] {
				seenSets[dir] = true
				sets = append(sets, &domain.ContentRef{
					ID:        dir + "/",
					Kind:      domain.KindSet,
					Title:     humanize(path.Base(dir)),
					Tags:      []string{domain.HomePageTag},
					ChildTags: []string{tag},
				})
			}
		}
		articles = append(articles, article)
	}

	return append(sets, articles...), nil
}

func markdownArticle(rel, content string) *domain.ContentRef {
	title, rest := splitTitle(content, rel)
	body := stripMarkdown(rest, path.Dir(rel))
	return &domain.ContentRef{
		ID:       strings.TrimSuffix(rel, path.Ext(rel)),
		Kind:     domain.KindArticle,
		Title:    title,
		Synopsis: synopsis(body),
		Body:     body,
	}
}

// splitTitle takes the first H1 heading as title and returns the content
// without it. Without a heading the title comes from the file name.
func splitTitle(content, rel string) (string, string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			rest := append(lines[:i:i], lines[i+1:]...)
			return strings.TrimSpace(strings.TrimPrefix(line, "#")), strings.Join(rest, "\n")
		}
	}

	name := path.Base(rel)
	return humanize(strings.TrimSuffix(name, path.Ext(name))), content
}

// stripMarkdown reduces markdown to the plain text shown in the article
// view. dir is the slash path of the file, used to resolve relative links.
func stripMarkdown(content, dir string) string {
	content = codeBlockPattern.ReplaceAllString(content, "")
	content = inlineCodePattern.ReplaceAllString(content, "$1")
	content = imagePattern.ReplaceAllString(content, "")
	content = mdLinkPattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := mdLinkPattern.FindStringSubmatch(m)
		label, target := sub[1], sub[2]
		if id, ok := linkID(target, dir); ok {
			return "[[" + id + "|" + label + "]]"
		}
		return label
	})
	content = headingPattern.ReplaceAllString(content, "")
	content = boldPattern.ReplaceAllString(content, "$1$2")
	content = italicPattern.ReplaceAllString(content, "$1$2")
	content = blockquotePattern.ReplaceAllString(content, "")
	content = rulePattern.ReplaceAllString(content, "")
	content = listMarkerPattern.ReplaceAllString(content, "- ")
	content = multiNewlinePattern.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// linkID resolves a relative markdown link to an article ID.
func linkID(target, dir string) (string, bool) {
	if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") {
		return "", false
	}
	target, _, _ = strings.Cut(target, "#")
	if !isMarkdown(target) {
		return "", false
	}

	var p string
	if strings.HasPrefix(target, "/") {
		p = path.Clean(strings.TrimPrefix(target, "/"))
	} else {
		p = path.Join(dir, target)
	}
	if strings.HasPrefix(p, "../") {
		return "", false
	}
	return strings.TrimSuffix(p, path.Ext(p)), true
}

func synopsis(body string) string {
	para, _, _ := strings.Cut(body, "\n\n")
	para = strings.Join(strings.Fields(linkText(para)), " ")
	if len(para) <= synopsisLength {
		return para
	}
	cut := strings.LastIndex(para[:synopsisLength], " ")
	if cut <= 0 {
		cut = synopsisLength
	}
	return para[:cut] + "..."
}

// linkText replaces article links with their labels.
func linkText(s string) string {
	return articleLinkPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := articleLinkPattern.FindStringSubmatch(m)
		if sub[2] != "" {
			return sub[2]
		}
		return sub[1]
	})
}

func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

func dirTag(dir string) string {
	return "dir:" + dir
}

func humanize(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
