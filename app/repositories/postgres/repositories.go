package postgres

import (
	"time"

	"blogly/app/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements repositories.UserRepository
type UserRepository struct{ *pgTx }

func (r *UserRepository) Create(user *models.User) error {
	err := r.tx.QueryRow(r.ctx,
		`INSERT INTO users (first_name, last_name, image_url) VALUES ($1, $2, $3) RETURNING id`,
		user.FirstName, user.LastName, user.ImageURL,
	).Scan(&user.ID)
	return translate(err)
}

func (r *UserRepository) GetByID(id int) (*models.User, error) {
	rows, _ := r.tx.Query(r.ctx, `SELECT id, first_name, last_name, image_url FROM users WHERE id = $1`, id)
	user, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *UserRepository) List() ([]*models.User, error) {
	rows, _ := r.tx.Query(r.ctx,
		`SELECT id, first_name, last_name, image_url FROM users
		 ORDER BY last_name COLLATE "C", first_name COLLATE "C", id`)
	users, err := pgx.CollectRows(rows, scanUser)
	return users, translate(err)
}

func (r *UserRepository) Update(user *models.User) error {
	return r.execOne(
		`UPDATE users SET first_name = $2, last_name = $3, image_url = $4 WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.ImageURL)
}

func (r *UserRepository) Delete(id int) error {
	return r.execOne(`DELETE FROM users WHERE id = $1`, id)
}

func scanUser(row pgx.CollectableRow) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.ImageURL)
	return &u, err
}

// PostRepository implements repositories.PostRepository
type PostRepository struct{ *pgTx }

func (r *PostRepository) Create(post *models.Post) error {
	err := r.tx.QueryRow(r.ctx,
		`INSERT INTO posts (title, content, created_at, user_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		post.Title, post.Content, nullTime(post.CreatedAt), post.UserID,
	).Scan(&post.ID)
	return translate(err)
}

func (r *PostRepository) GetByID(id int) (*models.Post, error) {
	rows, _ := r.tx.Query(r.ctx, `SELECT id, title, content, created_at, user_id FROM posts WHERE id = $1`, id)
	post, err := pgx.CollectExactlyOneRow(rows, scanPost)
	if err != nil {
		return nil, translate(err)
	}
	return post, nil
}

func (r *PostRepository) ListByUser(userID int) ([]*models.Post, error) {
	rows, _ := r.tx.Query(r.ctx,
		`SELECT id, title, content, created_at, user_id FROM posts WHERE user_id = $1 ORDER BY id`, userID)
	posts, err := pgx.CollectRows(rows, scanPost)
	return posts, translate(err)
}

func (r *PostRepository) Update(post *models.Post) error {
	return r.execOne(
		`UPDATE posts SET title = $2, content = $3, created_at = $4, user_id = $5 WHERE id = $1`,
		post.ID, post.Title, post.Content, nullTime(post.CreatedAt), post.UserID)
}

func (r *PostRepository) Delete(id int) error {
	return r.execOne(`DELETE FROM posts WHERE id = $1`, id)
}

func scanPost(row pgx.CollectableRow) (*models.Post, error) {
	var (
		p         models.Post
		createdAt *time.Time
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &createdAt, &p.UserID); err != nil {
		return nil, err
	}
	if createdAt != nil {
		p.CreatedAt = createdAt.UTC()
	}
	return &p, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// TagRepository implements repositories.TagRepository
type TagRepository struct{ *pgTx }

func (r *TagRepository) Create(tag *models.Tag) error {
	err := r.tx.QueryRow(r.ctx, `INSERT INTO tags (name) VALUES ($1) RETURNING id`, tag.Name).Scan(&tag.ID)
	return translate(err)
}

func (r *TagRepository) GetByID(id int) (*models.Tag, error) {
	rows, _ := r.tx.Query(r.ctx, `SELECT id, name FROM tags WHERE id = $1`, id)
	tag, err := pgx.CollectExactlyOneRow(rows, scanTag)
	if err != nil {
		return nil, translate(err)
	}
	return tag, nil
}

func (r *TagRepository) List() ([]*models.Tag, error) {
	rows, _ := r.tx.Query(r.ctx, `SELECT id, name FROM tags ORDER BY name COLLATE "C", id`)
	tags, err := pgx.CollectRows(rows, scanTag)
	return tags, translate(err)
}

func scanTag(row pgx.CollectableRow) (*models.Tag, error) {
	var t models.Tag
	err := row.Scan(&t.ID, &t.Name)
	return &t, err
}

// PostTagRepository implements repositories.PostTagRepository
type PostTagRepository struct{ *pgTx }

func (r *PostTagRepository) Create(pt *models.PostTag) error {
	err := r.tx.QueryRow(r.ctx,
		`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) RETURNING id`,
		pt.PostID, pt.TagID,
	).Scan(&pt.ID)
	return translate(err)
}

func (r *PostTagRepository) ListByPost(postID int) ([]*models.PostTag, error) {
	rows, _ := r.tx.Query(r.ctx,
		`SELECT id, post_id, tag_id FROM post_tags WHERE post_id = $1 ORDER BY tag_id`, postID)
	pts, err := pgx.CollectRows(rows, scanPostTag)
	return pts, translate(err)
}

func (r *PostTagRepository) ListByTag(tagID int) ([]*models.PostTag, error) {
	rows, _ := r.tx.Query(r.ctx,
		`SELECT id, post_id, tag_id FROM post_tags WHERE tag_id = $1 ORDER BY post_id`, tagID)
	pts, err := pgx.CollectRows(rows, scanPostTag)
	return pts, translate(err)
}

func (r *PostTagRepository) Delete(postID, tagID int) error {
	return r.execOne(`DELETE FROM post_tags WHERE post_id = $1 AND tag_id = $2`, postID, tagID)
}

func (r *PostTagRepository) DeleteByPost(postID int) error {
	_, err := r.tx.Exec(r.ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID)
	return translate(err)
}

func scanPostTag(row pgx.CollectableRow) (*models.PostTag, error) {
	var pt models.PostTag
	err := row.Scan(&pt.ID, &pt.PostID, &pt.TagID)
	return &pt, err
}
