package server

import (
	"html/template"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// indexTemplate is the server-rendered feed page. The creation form talks to
// the JSON API directly; the session token comes from the provider's cookie.
var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"initials": models.NameInitials,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Ripple</title>
<style>
body { background: #18181b; color: #e4e4e7; font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
.post { border: 1px solid #fffbeb40; border-radius: 6px; margin-bottom: 1rem; }
.post header { display: flex; gap: .5rem; padding: 1rem; align-items: center; }
.post .content { padding: 0 1rem 1rem; }
.avatar { width: 2.5rem; height: 2.5rem; border-radius: 999px; background: #3f3f46;
  display: flex; align-items: center; justify-content: center; overflow: hidden; }
.avatar img { width: 100%; height: 100%; object-fit: cover; }
.author { color: #fef3c7; font-weight: 600; }
.when { color: #a1a1aa; font-size: .85rem; }
form { display: flex; gap: .5rem; margin-bottom: 1.5rem; }
input[type=text] { flex: 1; background: #27272a; color: inherit; border: 0; border-radius: 6px; padding: .5rem 1rem; }
button { background: #93c5fd; border: 0; border-radius: 6px; padding: .5rem 1rem; cursor: pointer; }
</style>
</head>
<body>
<h1>Ripple</h1>
<form id="create">
  <input type="text" name="content" maxlength="256" placeholder="What are you up to?">
  <button type="submit">Post it!</button>
</form>
{{range .Posts}}
<article class="post">
  <header>
    <div class="avatar">
      {{if .ProfilePicture}}<img src="{{.ProfilePicture}}" alt="">{{else}}{{initials .AuthorName}}{{end}}
    </div>
    <div>
      <div class="author">{{.AuthorName}}</div>
      <div class="when">{{.CreatedAt.Format "Jan 2, 2006 15:04"}}</div>
    </div>
  </header>
  <div class="content">{{.Content}}</div>
</article>
{{end}}
<script>
document.getElementById("create").addEventListener("submit", async (e) => {
  e.preventDefault();
  const content = new FormData(e.target).get("content");
  if (!content || !content.trim()) return;
  const res = await fetch("/api/posts", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    credentials: "include",
    body: JSON.stringify({ content }),
  });
  if (res.ok) location.reload();
});
</script>
</body>
</html>
`))

// Index handles GET /: the post feed rendered server-side.
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return indexTemplate.Execute(c.Response().BodyWriter(), struct {
		Posts []models.Post
	}{Posts: posts})
}
