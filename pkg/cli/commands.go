package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/filereader"
	"github.com/filetug/estorage/pkg/fsutils"
	"github.com/filetug/estorage/pkg/inspector"
	"github.com/filetug/estorage/pkg/viewers"
	"github.com/spf13/cobra"
)

var runInspector = inspector.Run

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "stat PATH",
		Short:   "Show the properties of a file or folder",
		Example: "estorage stat ~/notes.txt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			item, err := resolveItem(ctx, args[0])
			if err != nil {
				return err
			}
			writeMeta(cmd.OutOrStdout(), viewers.ItemMeta(ctx, item))
			return nil
		},
	}
}

func writeMeta(w io.Writer, meta *viewers.Meta) {
	if meta == nil {
		return
	}
	for _, group := range meta.Groups {
		_, _ = fmt.Fprintln(w, group.Title)
		for _, record := range group.Records {
			_, _ = fmt.Fprintf(w, "  %-13s %s\n", record.Title+":", record.Value)
		}
	}
}

func newLsCmd() *cobra.Command {
	var filesOnly, foldersOnly, long bool
	cmd := &cobra.Command{
		Use:     "ls [FOLDER]",
		Aliases: []string{"list"},
		Short:   "List the content of a folder",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if filesOnly && foldersOnly {
				return errors.New("--files and --folders are mutually exclusive")
			}
			ctx := cmd.Context()
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			folder, err := resolveFolder(ctx, target)
			if err != nil {
				return err
			}
			var items []estorage.Item
			switch {
			case filesOnly:
				fileItems, err := folder.GetFiles(ctx)
				if err != nil {
					return err
				}
				for _, f := range fileItems {
					items = append(items, f)
				}
			case foldersOnly:
				folderItems, err := folder.GetFolders(ctx)
				if err != nil {
					return err
				}
				for _, f := range folderItems {
					items = append(items, f)
				}
			default:
				if items, err = folder.GetItems(ctx); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, item := range items {
				if long {
					writeLongEntry(cmd, item)
					continue
				}
				switch v := item.(type) {
				case *estorage.Folder:
					_, _ = fmt.Fprintf(out, "%-6s %8s  %s/\n", "folder", "-", v.Name())
				case *estorage.File:
					_, _ = fmt.Fprintf(out, "%-6s %8s  %s\n", "file", fsutils.GetSizeShortText(v.Size(ctx)), v.Name())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&filesOnly, "files", false, "list files only")
	cmd.Flags().BoolVar(&foldersOnly, "folders", false, "list folders only")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show attributes, exact size and age")
	return cmd
}

// writeLongEntry prints one line with attributes, size and last write age.
func writeLongEntry(cmd *cobra.Command, item estorage.Item) {
	ctx := cmd.Context()
	size, name := "-", item.Name()
	if file, ok := item.(*estorage.File); ok {
		size = humanize.Bytes(uint64(file.Size(ctx)))
	} else {
		name += "/"
	}
	age := "-"
	if t := item.LastWriteTime(ctx); !t.IsZero() {
		age = humanize.Time(t)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-24s %10s %16s  %s\n", item.Attributes(), size, age, name)
}

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat FILE",
		Short: "Print a file as UTF-8 text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			file, err := resolveFile(ctx, args[0])
			if err != nil {
				return err
			}
			text, ok := filereader.ReadText(ctx, file)
			if !ok {
				return fmt.Errorf("failed to read %s", file.Path())
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newImageCmd() *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "image FILE",
		Short: "Print the format and dimensions of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			file, err := resolveFile(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if decode {
				img := <-filereader.TryGetImageAsync(ctx, file)
				if img == nil {
					return fmt.Errorf("%s is not a readable image", file.Path())
				}
				b := img.Bounds()
				_, _ = fmt.Fprintf(out, "%dx%d decoded\n", b.Dx(), b.Dy())
				return nil
			}
			cfg, format, ok := filereader.ImageConfig(ctx, file)
			if !ok {
				return fmt.Errorf("%s is not a readable image", file.Path())
			}
			_, _ = fmt.Fprintf(out, "%s %dx%d\n", strings.ToUpper(format), cfg.Width, cfg.Height)
			return nil
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "decode the full image instead of reading its header")
	return cmd
}

func newRmCmd() *cobra.Command {
	var recursive bool
	cmd := &cobra.Command{
		Use:   "rm PATH",
		Short: "Delete a file, or a folder with everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			item, err := resolveItem(ctx, args[0])
			if err != nil {
				return err
			}
			switch v := item.(type) {
			case *estorage.File:
				if !v.Delete(ctx) {
					return fmt.Errorf("failed to delete %s", v.Path())
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", v.Path())
			case *estorage.Folder:
				if !recursive {
					return fmt.Errorf("%s is a folder, use -r to delete it", v.Path())
				}
				result := v.DeleteTree(ctx)
				if !result.OK() {
					return fmt.Errorf("deleted %d entries, stopped at %s: %w", result.Deleted, result.FailedPath, result.Err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%d entries)\n", v.Path(), result.Deleted)
			}
			loggerFrom(cmd).Info().Str("path", item.Path()).Msg("deleted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "delete folders and their content")
	return cmd
}

func newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mv PATH NEW_NAME",
		Aliases: []string{"rename"},
		Short:   "Rename a file or folder in place",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			item, err := resolveItem(ctx, args[0])
			if err != nil {
				return err
			}
			newName := args[1]
			if strings.ContainsAny(newName, `/\`) {
				return fmt.Errorf("new name %q must not contain a path separator", newName)
			}
			renamed := item.Rename(ctx, newName)
			if renamed == nil {
				return fmt.Errorf("failed to rename %s to %s", item.Path(), newName)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renamed.Path())
			return nil
		},
	}
}

func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir FOLDER NAME",
		Short: "Create a folder inside FOLDER",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			parent, err := resolveFolder(ctx, args[0])
			if err != nil {
				return err
			}
			folder, err := parent.CreateFolder(ctx, args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), folder.Path())
			return nil
		},
	}
}

func newTouchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "touch FOLDER NAME",
		Short: "Create an empty file inside FOLDER",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			parent, err := resolveFolder(ctx, args[0])
			if err != nil {
				return err
			}
			file, err := parent.CreateFile(ctx, args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), file.Path())
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [PATH]",
		Short: "Browse a file or folder in an interactive screen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			item, err := resolveItem(ctx, target)
			if err != nil {
				return err
			}
			s := settingsFrom(ctx)
			return runInspector(ctx, item, inspector.Options{
				Style:    s.Preview.Style,
				MaxBytes: s.Preview.MaxBytes,
			})
		},
	}
}
