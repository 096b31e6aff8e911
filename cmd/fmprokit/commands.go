// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adrixdax/FMProKit2/internal/odata"
	"github.com/adrixdax/FMProKit2/pkg/fmodata"
)

type record = map[string]any

var (
	whereExpr  string
	orderBy    string
	descending bool
	top        int
	skip       int
	selectCols []string
	rawMeta    bool
	scriptArg  string
	outFile    string
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := client.ListTables(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([]record, len(tables))
		for i, t := range tables {
			rows[i] = record{"name": t.Name, "kind": t.Kind, "url": t.URL}
		}
		return render(rows)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <table>",
	Short: "Read the records of a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringVarP(&whereExpr, "where", "w", "", `filter as "field op value", e.g. "status eq 2"`)
	getCmd.Flags().StringVar(&orderBy, "orderby", "", "field to sort on")
	getCmd.Flags().BoolVar(&descending, "desc", false, "sort descending")
	getCmd.Flags().IntVar(&top, "top", -1, "maximum number of records")
	getCmd.Flags().IntVar(&skip, "skip", -1, "number of records to skip")
	getCmd.Flags().StringSliceVar(&selectCols, "select", nil, "fields to return")

	metadataCmd.Flags().BoolVar(&rawMeta, "raw", false, "print the EDMX document instead of a table summary")
	scriptCmd.Flags().StringVar(&scriptArg, "param", "", "script parameter as JSON (plain text is sent as a string)")
	containerCmd.Flags().StringVar(&outFile, "out", "", "file to write to (default stdout)")
}

func runGet(cmd *cobra.Command, args []string) error {
	q := fmodata.From(args[0])
	if whereExpr != "" {
		f, err := parseWhere(whereExpr)
		if err != nil {
			return err
		}
		q = q.Where(f.Field, f.Op, f.Value)
	}
	if orderBy != "" {
		dir := fmodata.Asc
		if descending {
			dir = fmodata.Desc
		}
		q = q.OrderBy(orderBy, dir)
	}
	if cmd.Flags().Changed("top") {
		q = q.Limit(top)
	}
	if cmd.Flags().Changed("skip") {
		q = q.Offset(skip)
	}
	if len(selectCols) > 0 {
		q = q.Fields(selectCols...)
	}

	logger.Debug().Str("query", odata.Build(q)).Msg("Reading table")
	rows, err := fmodata.GetTable[[]record](cmd.Context(), client, q)
	if err != nil {
		return err
	}
	return render(rows)
}

var recordCmd = &cobra.Command{
	Use:   "record <table> <id>...",
	Short: "Read records by primary key",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]any, len(args)-1)
		for i, raw := range args[1:] {
			ids[i] = odata.ParseID(raw)
		}
		rows, err := fmodata.GetRecords[record](cmd.Context(), client, args[0], ids)
		if err != nil {
			return err
		}
		return render(rows)
	},
}

var fieldCmd = &cobra.Command{
	Use:   "field <table> <id> <field>",
	Short: "Read one field of a record",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := fmodata.GetField[any](cmd.Context(), client, args[0], odata.ParseID(args[1]), args[2])
		if err != nil {
			return err
		}
		return render([]record{{args[2]: v}})
	},
}

var containerCmd = &cobra.Command{
	Use:   "container <table> <id> <field>",
	Short: "Download the content of a container field",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := client.GetDataField(cmd.Context(), args[0], odata.ParseID(args[1]), args[2])
		if err != nil {
			return err
		}
		if outFile == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
		logger.Info().Str("file", outFile).Int("bytes", len(data)).Msg("Container saved")
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count <table>",
	Short: "Count the records of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := client.GetTableCount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render([]record{{"table": args[0], "count": n}})
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <table> <query>",
	Short: "Send a GET with a raw OData query string",
	Long: `Send a GET with a raw OData query string, e.g.

  fmprokit query Person '$filter=contains(city,''Rome'')&$top=3'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		type collection struct {
			Value []record `json:"value"`
		}
		res, err := fmodata.ExecuteQueryGet[collection](cmd.Context(), client, args[0], args[1])
		if err != nil {
			return err
		}
		return render(res.Value)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <table> <id>",
	Short: "Delete a record, or every record matched by --where",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			deleted bool
			err     error
		)
		switch {
		case len(args) == 2:
			deleted, err = client.DeleteRecord(cmd.Context(), args[0], odata.ParseID(args[1]))
		case whereExpr != "":
			var f fmodata.Filter
			if f, err = parseWhere(whereExpr); err != nil {
				return err
			}
			deleted, err = client.DeleteRecordsByFilter(cmd.Context(), args[0], f)
		default:
			return fmt.Errorf("delete needs a record id or --where")
		}
		if err != nil {
			return err
		}
		return render([]record{{"table": args[0], "deleted": deleted}})
	},
}

func init() {
	deleteCmd.Flags().StringVarP(&whereExpr, "where", "w", "", `filter as "field op value"`)
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Show the tables and fields declared in $metadata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rawMeta {
			doc, err := client.MetadataString(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(doc)
			return nil
		}

		md, err := client.Metadata(cmd.Context())
		if err != nil {
			return err
		}
		names := make([]string, 0, len(md.Tables))
		for name := range md.Tables {
			names = append(names, name)
		}
		sort.Strings(names)

		rows := make([]record, 0, len(names))
		for _, name := range names {
			t := md.Tables[name]
			rows = append(rows, record{
				"table":  name,
				"fields": len(t.Fields),
				"keys":   strings.Join(t.KeyFields, ","),
			})
		}
		return render(rows)
	},
}

var scriptCmd = &cobra.Command{
	Use:   "script <name>",
	Short: "Run a FileMaker script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var param any
		if scriptArg != "" {
			if err := json.Unmarshal([]byte(scriptArg), &param); err != nil {
				param = scriptArg
			}
		}
		res, err := client.RunScript(cmd.Context(), args[0], param)
		if err != nil {
			return err
		}
		row := record{"script": args[0]}
		if res.Code != nil {
			row["code"] = *res.Code
		}
		if res.ResultParameter != nil {
			row["result"] = *res.ResultParameter
		}
		if res.Message != nil {
			row["message"] = *res.Message
		}
		return render([]record{row})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Open a session and print its token",
	Long: `Open a session and print its token. The session stays open until it expires
on the server, so the token can be reused by other tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := client.FetchToken(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func render(rows []record) error {
	f, err := formatter()
	if err != nil {
		return err
	}
	return f.Format(rows)
}
