// The gtd program captures and organizes tasks in a JSON data file shared with other clients.
//
// The data file is found at the path given by --data, or the GTD_DATA (or MINDWTR_DATA) environment variable, or
// data_file_path in $XDG_CONFIG_HOME/gtd/config.yaml, in this order. The default is $XDG_DATA_HOME/gtd/data.json.
// The config file may also set log_level, no_color, and journal_path, a file where all changes are logged.
//
// Tasks are added with a quick-add line:
//
//	gtd add Call mom @phone #family /next /due:tomorrow 5pm /note:ask about the trip
//
// Listing and searching take a query whose terms are ANDed together. The @ symbol introduces a context, # a tag,
// + a project title, / a status; anything else is looked for in titles and descriptions. Prepending minus negates
// a term. For example, all open tasks at home that are not errands:
//
//	gtd list --query '@home -#errand'
//
// Completing a recurring task creates its next instance.
package main // import "github.com/nicolagi/gtd/cmd/gtd"
