package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/attachment"
	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/forms"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const dateLayout = "Jan 2, 2006 15:04"

func (a *App) List(ctx context.Context) error {
	posts, err := a.postService.List(ctx)
	if err != nil {
		a.notify(ctx, err)
		return err
	}
	a.printList(posts, "No posts yet.")
	return nil
}

// Mine lists the posts of the logged-in user.
func (a *App) Mine(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn(describe(client.ErrNoSession))
		return client.ErrNoSession
	}
	posts, err := a.postService.ListMine(ctx)
	if err != nil {
		a.notify(ctx, err)
		return err
	}
	a.printList(posts, "You have not written any posts yet.")
	return nil
}

func (a *App) printList(posts []models.Post, empty string) {
	if len(posts) == 0 {
		printlnFn(empty)
		return
	}
	for _, p := range posts {
		mark := ""
		if a.postService.CanMutate(p) {
			mark = " *"
		}
		printlnFn(fmt.Sprintf("%-5s %s  by %s, %s%s", p.ID, p.Title, p.AuthorUsername, p.CreatedAt.Local().Format(dateLayout), mark))
	}
}

// postID takes the id from args or asks for it.
func (a *App) postID(args []string) (models.ID, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		s, err := getSimpleText(a.reader, "Enter post ID", a.out)
		if err != nil {
			return "", err
		}
		raw = s
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errMissingID
	}
	return models.ID(raw), nil
}

// Show prints one post. Edit and delete hints appear only for its author.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.postID(args)
	if err != nil {
		printlnFn("Usage: show <id>")
		return err
	}
	post, err := a.postService.Get(ctx, id)
	if err != nil {
		a.notify(ctx, err)
		return err
	}
	a.printPost(post)
	return nil
}

func (a *App) printPost(p *models.Post) {
	printlnFn(p.Title)
	printlnFn(fmt.Sprintf("by %s, %s", p.AuthorUsername, p.CreatedAt.Local().Format(dateLayout)))
	if p.Edited() {
		printlnFn(fmt.Sprintf("Updated: %s", p.UpdatedAt.Local().Format(dateLayout)))
	}
	if p.HasImage() {
		printlnFn(fmt.Sprintf("Image: %s", p.Image))
	}
	printlnFn("")
	printlnFn(p.Description)
	if a.postService.CanMutate(*p) {
		printlnFn("")
		printlnFn(fmt.Sprintf("You can 'edit %s' or 'delete %s' this post.", p.ID, p.ID))
	}
}

func postFields(sel *attachment.Selector, editing bool) []field[models.PostInput] {
	title := field[models.PostInput]{
		name: models.FieldTitle, prompt: "Title",
		set: setString(func(v *models.PostInput) *string { return &v.Title }),
	}
	desc := field[models.PostInput]{
		name: models.FieldDescription, prompt: "Description", kind: kindMultiline,
		set: setString(func(v *models.PostInput) *string { return &v.Description }),
	}
	imagePrompt := "Image file path"
	if editing {
		title.current = func(v models.PostInput) string { return v.Title }
		desc.current = func(v models.PostInput) string { return v.Description }
		imagePrompt += " (empty to keep the current image)"
	}
	image := field[models.PostInput]{
		name: models.FieldImage, prompt: imagePrompt,
		set: func(ctx context.Context, v *models.PostInput, path string) error {
			if path == "" {
				sel.Clear()
				v.Image = nil
				return nil
			}
			sel.Select(ctx, path)
			att, err := sel.Wait()
			if err != nil {
				return err
			}
			printlnFn(fmt.Sprintf("  %s: %dx%d %s, preview ready (%d bytes)",
				att.Upload.Filename, att.Width, att.Height, att.Upload.ContentType, len(att.Thumbnail)))
			v.Image = sel.Upload()
			return nil
		},
	}
	return []field[models.PostInput]{title, desc, image}
}

// New creates a post. An image is required.
func (a *App) New(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn(describe(client.ErrNoSession))
		return client.ErrNoSession
	}

	sel := attachment.NewSelector(a.encode)
	defer sel.Discard()

	form := forms.New(models.PostInput{}, forms.ValidatePost(false))
	var created *models.Post
	res := runForm(ctx, a, form, postFields(sel, false), func(ctx context.Context, in models.PostInput) error {
		p, err := a.postService.Create(ctx, in)
		created = p
		return err
	})
	if !res.OK() {
		return a.finish(ctx, res)
	}

	printlnFn("Post created")
	a.printPost(created)
	return nil
}

// ownedPost fetches the post behind args and checks that the current user
// may change it. Not being allowed sends the user back to the listing.
func (a *App) ownedPost(ctx context.Context, args []string, usage string) (*models.Post, error) {
	if !a.isReady() {
		printlnFn("Still restoring your session, try again in a moment")
		return nil, errNotReady
	}
	if !a.isLoggedIn() {
		printlnFn(describe(client.ErrNoSession))
		return nil, client.ErrNoSession
	}
	id, err := a.postID(args)
	if err != nil {
		printlnFn(usage)
		return nil, err
	}
	post, err := a.postService.Get(ctx, id)
	if err != nil {
		a.notify(ctx, err)
		return nil, err
	}
	if !a.postService.CanMutate(*post) {
		return post, client.ErrForbidden
	}
	return post, nil
}

var (
	errNotReady  = errors.New("session not restored yet")
	errMissingID = errors.New("post id is required")
)

// Edit changes the title, description or image of one of the user's posts.
// Fields left empty keep their value, and the image is only sent when a new
// file was chosen.
func (a *App) Edit(ctx context.Context, args []string) error {
	post, err := a.ownedPost(ctx, args, "Usage: edit <id>")
	if errors.Is(err, client.ErrForbidden) {
		return a.forbidden(ctx, "You don't have permission to edit this post")
	}
	if err != nil {
		return err
	}

	sel := attachment.NewSelector(a.encode)
	defer sel.Discard()

	form := forms.New(models.PostInput{Title: post.Title, Description: post.Description}, forms.ValidatePost(true))
	var updated *models.Post
	res := runForm(ctx, a, form, postFields(sel, true), func(ctx context.Context, in models.PostInput) error {
		p, err := a.postService.Update(ctx, post.ID, in)
		updated = p
		return err
	})
	if errors.Is(res.Err, client.ErrForbidden) {
		return a.forbidden(ctx, "You don't have permission to edit this post")
	}
	if !res.OK() {
		return a.finish(ctx, res)
	}

	printlnFn("Post updated")
	a.printPost(updated)
	return nil
}

// Delete removes one of the user's posts after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	post, err := a.ownedPost(ctx, args, "Usage: delete <id>")
	if errors.Is(err, client.ErrForbidden) {
		return a.forbidden(ctx, "You don't have permission to delete this post")
	}
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Are you sure you want to delete this post?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.postService.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, client.ErrForbidden) {
			return a.forbidden(ctx, "You don't have permission to delete this post")
		}
		a.notify(ctx, err)
		return err
	}

	printlnFn("Post deleted")
	return a.List(ctx)
}

// forbidden tells the user and returns them to the listing.
func (a *App) forbidden(ctx context.Context, msg string) error {
	printlnFn(msg)
	_ = a.List(ctx)
	return client.ErrForbidden
}
