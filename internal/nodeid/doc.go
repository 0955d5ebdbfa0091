/*
Package nodeid centralizes the identifier conventions shared by the compiler
stages: turning free-form graph node IDs into valid generated-code
identifiers, naming the variable that holds a node's computed result, and
composing the prefixed IDs that sub-graph expansion assigns to cloned nodes.

The expansion scheme is `<instance>__<internal>`: the double underscore
separator keeps cloned IDs globally unique and lets nested expansions stack,
e.g. `outer__inner__add`.
*/
package nodeid
