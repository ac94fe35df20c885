package cli

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"docs-portal/internal/security"
	"docs-portal/internal/service"
	"docs-portal/internal/util"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"
)

func (a *App) List(ctx context.Context, args []string) error {
	fs := a.flagSet("list")
	search := fs.String("search", "", "texto a buscar (mínimo 2 caracteres)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, security.RequireAdmin)
	if err != nil {
		return err
	}

	docs, err := a.docs.List(ctx, session, *search)
	if err != nil {
		return err
	}

	a.printDocuments(docs)
	return nil
}

// Watch : поиск по мере ввода. Каждая строка stdin считается новым значением поля поиска
func (a *App) Watch(ctx context.Context) error {
	session, err := a.session(ctx, security.RequireAdmin)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	deliver := func(result service.SearchResult) {
		mu.Lock()
		defer mu.Unlock()

		if result.Err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", util.UserMessage(result.Err))
			return
		}
		if result.Query == "" {
			fmt.Fprintln(a.out, "Todos los documentos:")
		} else {
			fmt.Fprintf(a.out, "Resultados para %q:\n", result.Query)
		}
		a.printDocuments(result.Documents)
	}

	search := a.docs.NewSearch(ctx, session, deliver)
	defer search.Stop()

	fmt.Fprintln(a.out, "Escriba para buscar. Línea vacía muestra todo, Ctrl+D para salir")
	search.Submit("")

	for {
		line, err := a.reader.ReadString('\n')
		if line != "" || err == nil {
			search.Input(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				search.Flush()
				return nil
			}
			return err
		}
	}
}

func (a *App) Upload(ctx context.Context, args []string) error {
	fs := a.flagSet("upload")
	path := fs.String("file", "", "ruta al archivo PDF, DOC o DOCX")
	name := fs.String("name", "", "nombre (se genera a partir de tipo, marca y modelo si se omite)")
	docType := fs.String("type", "", "manual, specs, diagram, firmware, guide")
	category := fs.String("category", "", "categoría")
	brand := fs.String("brand", "", "marca")
	deviceModel := fs.String("model", "", "modelo")
	description := fs.String("description", "", "descripción")
	keywords := fs.String("keywords", "", "palabras clave separadas por comas")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return withHint(apperrors.MissingField("file"), "Indique el archivo con -file")
	}

	session, err := a.session(ctx, security.RequireAdmin)
	if err != nil {
		return err
	}

	file, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("no se pudo abrir el archivo: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("no se pudo leer el archivo: %w", err)
	}

	input := model.FileInput{
		Name:        filepath.Base(*path),
		Size:        info.Size(),
		ContentType: util.ContentTypeByExtension(*path),
		Body:        file,
	}
	meta := model.DocumentMetadata{
		Name:        *name,
		Type:        model.DocumentType(*docType),
		Category:    *category,
		Brand:       *brand,
		Model:       *deviceModel,
		Description: *description,
		Keywords:    model.ParseKeywords(*keywords),
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.UploadTimeout())
	defer cancel()

	document, err := a.uploads.Upload(ctx, session, input, meta)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Documento subido: %s (%s)\n", document.Name, document.ID)
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	fs := a.flagSet("update")
	id := fs.String("id", "", "id del documento")
	name := fs.String("name", "", "nombre")
	docType := fs.String("type", "", "tipo")
	category := fs.String("category", "", "categoría")
	brand := fs.String("brand", "", "marca")
	deviceModel := fs.String("model", "", "modelo")
	description := fs.String("description", "", "descripción")
	keywords := fs.String("keywords", "", "palabras clave separadas por comas")
	if err := fs.Parse(args); err != nil {
		return err
	}

	update := model.DocumentUpdate{ID: *id}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			update.Name = name
		case "type":
			t := model.DocumentType(*docType)
			update.Type = &t
		case "category":
			update.Category = category
		case "brand":
			update.Brand = brand
		case "model":
			update.Model = deviceModel
		case "description":
			update.Description = description
		case "keywords":
			parsed := model.ParseKeywords(*keywords)
			update.Keywords = &parsed
		}
	})

	session, err := a.session(ctx, security.RequireAdmin)
	if err != nil {
		return err
	}

	if err := a.docs.Update(ctx, session, update); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Documento actualizado")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	fs := a.flagSet("delete")
	id := fs.String("id", "", "id del documento")
	yes := fs.Bool("yes", false, "no pedir confirmación")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, security.RequireAdmin)
	if err != nil {
		return err
	}

	if *yes == false {
		ok, err := Confirm(a.reader, "¿Eliminar el documento "+*id+"?", a.out)
		if err != nil {
			return err
		}
		if ok == false {
			fmt.Fprintln(a.out, "Cancelado")
			return nil
		}
	}

	if err := a.docs.Delete(ctx, session, *id); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Documento eliminado")
	return nil
}

func (a *App) Download(ctx context.Context, args []string) error {
	fs := a.flagSet("download")
	id := fs.String("id", "", "id del documento")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, security.RequireAdmin)
	if err != nil {
		return err
	}

	signedURL, err := a.docs.DownloadURL(ctx, session, *id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, signedURL)
	return nil
}

func (a *App) Role(ctx context.Context, args []string) error {
	fs := a.flagSet("role")
	email := fs.String("email", "", "email del usuario")
	role := fs.String("role", "", "guest, user, moderator, admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, security.RequireAdmin)
	if err != nil {
		return err
	}

	user, err := a.users.UpdateRole(ctx, session, *email, *role)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Rol actualizado: %s ahora es %s\n", user.DisplayName(), user.Role)
	return nil
}

// Orphans : файлы в хранилище, для которых не удалось сохранить документ
func (a *App) Orphans(ctx context.Context, args []string) error {
	fs := a.flagSet("orphans")
	limit := fs.Int("limit", 50, "máximo de registros")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.session(ctx, security.RequireAdmin); err != nil {
		return err
	}

	records, err := a.uploads.Orphans(ctx, *limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(a.out, "Sin archivos huérfanos")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENTO\tCLAVE\tARCHIVO\tFECHA\tERROR")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.DocumentID, r.StorageKey, r.FileName, r.CreatedAt.Format("2006-01-02 15:04"), r.Error)
	}
	return tw.Flush()
}

func (a *App) printDocuments(docs []model.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No se encontraron documentos")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tTIPO\tMARCA\tMODELO\tTAMAÑO")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Type.Label(), d.Brand, d.Model, formatSize(d.FileSize))
	}
	tw.Flush()
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGT"[exp])
}
