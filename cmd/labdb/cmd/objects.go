package cmd

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	addJSON         string
	allowDuplicates bool
	updateJSON      string
	noBumpTime      bool
)

var searchCmd = &cobra.Command{
	Use:   "search <kind> [column=value...]",
	Short: "List the rows of a kind matching every column=value filter",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind := mustParseKind(args[0])

		filters, err := parseFilters(kind, args[1:])
		if err != nil {
			log.Fatalf("Bad filter: %s", err)
		}

		var records []labmodel.Record
		err = runInStor(func(s stor.ObjectStor) error {
			records, err = s.Search(kind, filters)
			return err
		})
		if err != nil {
			log.Fatalf("Search failed: %s", err)
		}

		printJSON(records)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <kind> <id>",
	Short: "Show one row",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, id := mustParseKindAndID(args)

		var (
			record labmodel.Record
			err    error
		)
		err = runInStor(func(s stor.ObjectStor) error {
			record, err = s.GetByID(kind, id)
			return err
		})
		if err != nil {
			log.Fatalf("Unable to get %s %d: %s", kind, id, err)
		}

		printJSON(record)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <kind> --json '{...}'",
	Short: "Add a row; the parent must already exist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind := mustParseKind(args[0])

		record := kind.New()
		if err := decodeJSONArg(addJSON, record); err != nil {
			log.Fatalf("Bad --json: %s", err)
		}

		var (
			result stor.AddResult
			err    error
		)
		err = runInStor(func(s stor.ObjectStor) error {
			result, err = s.Add(record, allowDuplicates)
			return err
		})
		if err != nil {
			log.Fatalf("Unable to add %s: %s", kind, err)
		}

		if !result.Added() {
			log.Fatalf("%s not added: %s", kind, result.Condition)
		}

		printJSON(result)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <kind> <id> --json '{...}'",
	Short: "Change the given columns of a row and bump its version",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, id := mustParseKindAndID(args)

		patch := kind.NewPatch()
		if err := decodeJSONArg(updateJSON, patch); err != nil {
			log.Fatalf("Bad --json: %s", err)
		}

		var (
			record labmodel.Record
			err    error
		)
		err = runInStor(func(s stor.ObjectStor) error {
			record, err = s.Update(kind, id, patch, !noBumpTime)
			return err
		})
		if err != nil {
			log.Fatalf("Unable to update %s %d: %s", kind, id, err)
		}

		printJSON(record)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete a row and everything beneath it",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, id := mustParseKindAndID(args)

		err := runInStor(func(s stor.ObjectStor) error {
			return s.Delete(kind, id)
		})
		if err != nil {
			log.Fatalf("Unable to delete %s %d: %s", kind, id, err)
		}

		log.Infof("Deleted %s %d", kind, id)
	},
}

func init() {
	addCmd.Flags().StringVar(&addJSON, "json", "", "the row as a JSON object, or @file")
	addCmd.Flags().BoolVar(&allowDuplicates, "allow-duplicates", false, "add even if an identical row exists")
	_ = addCmd.MarkFlagRequired("json")

	updateCmd.Flags().StringVar(&updateJSON, "json", "{}", "the columns to change as a JSON object, or @file")
	updateCmd.Flags().BoolVar(&noBumpTime, "no-bump-time", false, "keep the time of the row")

	rootCmd.AddCommand(searchCmd, getCmd, addCmd, updateCmd, deleteCmd)
}

func mustParseKind(s string) labmodel.Kind {
	kind, err := labmodel.ParseKind(s)
	if err != nil {
		log.Fatalf("Unknown kind %q, expected one of %v", s, labmodel.AllKinds())
	}

	return kind
}

func mustParseKindAndID(args []string) (labmodel.Kind, int) {
	kind := mustParseKind(args[0])

	id, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatalf("Bad id %q: %s", args[1], err)
	}

	return kind, id
}

func parseFilters(kind labmodel.Kind, args []string) (stor.Filters, error) {
	filters := make(stor.Filters, len(args))
	for _, arg := range args {
		column, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, errors.Errorf("%q is not column=value", arg)
		}

		value, err := kind.ParseColumnValue(column, raw)
		if err != nil {
			return nil, err
		}

		filters[column] = value
	}

	return filters, nil
}

// decodeJSONArg decodes arg into v. An arg starting with @ names a file
// holding the JSON.
func decodeJSONArg(arg string, v interface{}) error {
	b := []byte(arg)
	if strings.HasPrefix(arg, "@") {
		var err error
		if b, err = os.ReadFile(arg[1:]); err != nil {
			return err
		}
	}

	return json.Unmarshal(b, v)
}
