package clm

import "net/url"

// Resource is a read-only CLM endpoint relative to an account.
type Resource struct {
	path  string
	query url.Values
}

// Path returns the account-relative path of the resource.
func (r Resource) Path() string { return r.path }

func CurrentMember() Resource { return Resource{path: "/members/current"} }

func CurrentUserWorkItems() Resource { return Resource{path: "/members/current/workitems"} }

func UserWorkflowQueues() Resource { return Resource{path: "/members/current/workflowqueues"} }

func WorkflowQueues() Resource { return Resource{path: "/workflowqueues"} }

func Member(id string) Resource { return Resource{path: "/members/" + url.PathEscape(id)} }

func Workflow(id string) Resource { return Resource{path: "/workflows/" + url.PathEscape(id)} }

// DocumentAttributes returns a document expanded with its attribute groups.
func DocumentAttributes(id string) Resource {
	return Resource{
		path:  "/documents/" + url.PathEscape(id),
		query: url.Values{"expand": []string{"AttributeGroups"}},
	}
}

func QueueWorkItems(queueID string) Resource {
	return Resource{path: "/workflowqueues/" + url.PathEscape(queueID) + "/workitems"}
}
